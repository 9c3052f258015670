package repository

import (
	"errors"
	"time"

	"github.com/hashhost/billing/internal/models"

	"gorm.io/gorm"
)

// BillingSessionRepository 账单会话数据访问接口
type BillingSessionRepository interface {
	Create(session *models.BillingSession) error
	GetByID(id string) (*models.BillingSession, error)
	UpdateSelectedMethod(id string, methodID string) error
	Touch(id string, at time.Time) error
	DeleteIdleBefore(before time.Time) (int64, error)
	Transaction(fn func(tx *gorm.DB) error) error
	WithTx(tx *gorm.DB) *GormBillingSessionRepository
}

// GormBillingSessionRepository GORM 实现
type GormBillingSessionRepository struct {
	db *gorm.DB
}

// NewBillingSessionRepository 创建会话仓库
func NewBillingSessionRepository(db *gorm.DB) *GormBillingSessionRepository {
	return &GormBillingSessionRepository{db: db}
}

// WithTx 绑定事务
func (r *GormBillingSessionRepository) WithTx(tx *gorm.DB) *GormBillingSessionRepository {
	if tx == nil {
		return r
	}
	return &GormBillingSessionRepository{db: tx}
}

// Transaction 执行事务
func (r *GormBillingSessionRepository) Transaction(fn func(tx *gorm.DB) error) error {
	return r.db.Transaction(fn)
}

// Create 创建会话
func (r *GormBillingSessionRepository) Create(session *models.BillingSession) error {
	return r.db.Create(session).Error
}

// GetByID 根据 ID 获取会话
func (r *GormBillingSessionRepository) GetByID(id string) (*models.BillingSession, error) {
	var session models.BillingSession
	if err := r.db.Where("id = ?", id).First(&session).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &session, nil
}

// UpdateSelectedMethod 更新当前支付方式
func (r *GormBillingSessionRepository) UpdateSelectedMethod(id string, methodID string) error {
	return r.db.Model(&models.BillingSession{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"selected_method": methodID,
			"updated_at":      time.Now(),
		}).Error
}

// Touch 刷新最近访问时间
func (r *GormBillingSessionRepository) Touch(id string, at time.Time) error {
	return r.db.Model(&models.BillingSession{}).
		Where("id = ?", id).
		UpdateColumn("last_seen_at", at).Error
}

// DeleteIdleBefore 删除闲置会话及其卡片
func (r *GormBillingSessionRepository) DeleteIdleBefore(before time.Time) (int64, error) {
	var removed int64
	err := r.db.Transaction(func(tx *gorm.DB) error {
		idle := tx.Model(&models.BillingSession{}).Select("id").Where("last_seen_at < ?", before)
		if err := tx.Where("session_id IN (?)", idle).Delete(&models.SavedCard{}).Error; err != nil {
			return err
		}
		result := tx.Where("last_seen_at < ?", before).Delete(&models.BillingSession{})
		if result.Error != nil {
			return result.Error
		}
		removed = result.RowsAffected
		return nil
	})
	if err != nil {
		return 0, err
	}
	return removed, nil
}
