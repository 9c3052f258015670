package repository

import (
	"errors"

	"github.com/hashhost/billing/internal/models"

	"gorm.io/gorm"
)

// PaymentRecordRepository 历史支付记录数据访问接口
type PaymentRecordRepository interface {
	ListAll() ([]models.PaymentRecord, error)
	GetByID(id uint) (*models.PaymentRecord, error)
	Count() (int64, error)
	SeedIfEmpty(records []models.PaymentRecord) (int, error)
}

// GormPaymentRecordRepository GORM 实现
type GormPaymentRecordRepository struct {
	db *gorm.DB
}

// NewPaymentRecordRepository 创建支付记录仓库
func NewPaymentRecordRepository(db *gorm.DB) *GormPaymentRecordRepository {
	return &GormPaymentRecordRepository{db: db}
}

// ListAll 按写入顺序返回全部记录
func (r *GormPaymentRecordRepository) ListAll() ([]models.PaymentRecord, error) {
	var records []models.PaymentRecord
	if err := r.db.Order("id asc").Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// GetByID 根据 ID 获取记录
func (r *GormPaymentRecordRepository) GetByID(id uint) (*models.PaymentRecord, error) {
	var record models.PaymentRecord
	if err := r.db.First(&record, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

// Count 记录总数
func (r *GormPaymentRecordRepository) Count() (int64, error) {
	var total int64
	if err := r.db.Model(&models.PaymentRecord{}).Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

// SeedIfEmpty 表为空时写入种子数据，返回写入条数
func (r *GormPaymentRecordRepository) SeedIfEmpty(records []models.PaymentRecord) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}
	inserted := 0
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var total int64
		if err := tx.Model(&models.PaymentRecord{}).Count(&total).Error; err != nil {
			return err
		}
		if total > 0 {
			return nil
		}
		if err := tx.Create(&records).Error; err != nil {
			return err
		}
		inserted = len(records)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return inserted, nil
}
