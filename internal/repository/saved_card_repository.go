package repository

import (
	"errors"

	"github.com/hashhost/billing/internal/models"

	"gorm.io/gorm"
)

// SavedCardRepository 已保存卡片数据访问接口
type SavedCardRepository interface {
	Create(card *models.SavedCard) error
	GetByID(sessionID string, id uint) (*models.SavedCard, error)
	ListBySession(sessionID string) ([]models.SavedCard, error)
	GetDefault(sessionID string) (*models.SavedCard, error)
	CountDefault(sessionID string) (int64, error)
	Delete(sessionID string, id uint) (bool, error)
	SetDefault(sessionID string, id uint) (bool, error)
	WithTx(tx *gorm.DB) *GormSavedCardRepository
}

// GormSavedCardRepository GORM 实现
type GormSavedCardRepository struct {
	db *gorm.DB
}

// NewSavedCardRepository 创建卡片仓库
func NewSavedCardRepository(db *gorm.DB) *GormSavedCardRepository {
	return &GormSavedCardRepository{db: db}
}

// WithTx 绑定事务
func (r *GormSavedCardRepository) WithTx(tx *gorm.DB) *GormSavedCardRepository {
	if tx == nil {
		return r
	}
	return &GormSavedCardRepository{db: tx}
}

// Create 创建卡片
func (r *GormSavedCardRepository) Create(card *models.SavedCard) error {
	return r.db.Create(card).Error
}

// GetByID 获取会话内的卡片
func (r *GormSavedCardRepository) GetByID(sessionID string, id uint) (*models.SavedCard, error) {
	var card models.SavedCard
	if err := r.db.Where("session_id = ? AND id = ?", sessionID, id).First(&card).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &card, nil
}

// ListBySession 按添加顺序列出会话卡片
func (r *GormSavedCardRepository) ListBySession(sessionID string) ([]models.SavedCard, error) {
	var cards []models.SavedCard
	if err := r.db.Where("session_id = ?", sessionID).Order("id asc").Find(&cards).Error; err != nil {
		return nil, err
	}
	return cards, nil
}

// GetDefault 获取默认卡
func (r *GormSavedCardRepository) GetDefault(sessionID string) (*models.SavedCard, error) {
	var card models.SavedCard
	result := r.db.Where("session_id = ? AND is_default = ?", sessionID, true).Order("id asc").Limit(1).Find(&card)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}
	return &card, nil
}

// CountDefault 统计默认卡数量
func (r *GormSavedCardRepository) CountDefault(sessionID string) (int64, error) {
	var total int64
	if err := r.db.Model(&models.SavedCard{}).
		Where("session_id = ? AND is_default = ?", sessionID, true).
		Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

// Delete 删除卡片，返回是否命中
func (r *GormSavedCardRepository) Delete(sessionID string, id uint) (bool, error) {
	result := r.db.Where("session_id = ? AND id = ?", sessionID, id).Delete(&models.SavedCard{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// SetDefault 在同一事务内清除其他默认标记并设置目标卡，目标不存在时不做任何修改
func (r *GormSavedCardRepository) SetDefault(sessionID string, id uint) (bool, error) {
	found := false
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var target models.SavedCard
		result := tx.Where("session_id = ? AND id = ?", sessionID, id).Limit(1).Find(&target)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return nil
		}
		if err := tx.Model(&models.SavedCard{}).
			Where("session_id = ? AND id <> ?", sessionID, id).
			Update("is_default", false).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.SavedCard{}).
			Where("session_id = ? AND id = ?", sessionID, id).
			Update("is_default", true).Error; err != nil {
			return err
		}
		found = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return found, nil
}
