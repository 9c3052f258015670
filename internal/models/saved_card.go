package models

import "time"

// SavedCard 用户保存的银行卡（仅保留末四位）
type SavedCard struct {
	ID        uint      `gorm:"primarykey" json:"id"`                     // 主键
	SessionID string    `gorm:"size:36;index;not null" json:"-"`          // 所属会话
	Last4     string    `gorm:"size:4;not null" json:"last4"`             // 卡号末四位
	Brand     string    `gorm:"size:32;not null" json:"brand"`            // 卡组织
	IsDefault bool      `gorm:"not null;default:false" json:"is_default"` // 是否默认卡
	CreatedAt time.Time `gorm:"index" json:"created_at"`                  // 创建时间
}

// TableName 指定表名
func (SavedCard) TableName() string {
	return "saved_cards"
}
