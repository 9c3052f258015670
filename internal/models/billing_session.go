package models

import "time"

// BillingSession 账单页会话（每个会话独立持有卡片与支付方式选择）
type BillingSession struct {
	ID             string    `gorm:"primarykey;size:36" json:"id"`                       // 会话ID（uuid）
	SelectedMethod string    `gorm:"size:32;not null;default:''" json:"selected_method"` // 当前支付方式，空表示未选择
	LastSeenAt     time.Time `gorm:"index" json:"last_seen_at"`                          // 最近访问时间
	CreatedAt      time.Time `json:"created_at"`                                         // 创建时间
	UpdatedAt      time.Time `json:"updated_at"`                                         // 更新时间
}

// TableName 指定表名
func (BillingSession) TableName() string {
	return "billing_sessions"
}
