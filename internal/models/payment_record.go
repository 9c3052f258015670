package models

import "time"

// PaymentRecord 历史支付记录（只读）
type PaymentRecord struct {
	ID            uint      `gorm:"primarykey" json:"id"`                      // 主键
	Date          time.Time `gorm:"index;not null" json:"date"`                // 支付日期（UTC 零点）
	Amount        Money     `gorm:"type:decimal(20,2);not null" json:"amount"` // 金额
	MethodLabel   string    `gorm:"size:64;not null" json:"method"`            // 支付方式展示名
	Category      string    `gorm:"size:64;index;not null" json:"type"`        // 分类（Service Fee / Rig Order）
	Status        string    `gorm:"size:16;index;not null" json:"status"`      // 状态（Paid / Pending / Failed）
	Last4         string    `gorm:"size:4" json:"last4,omitempty"`             // 卡号末四位
	TransactionID string    `gorm:"size:128" json:"tx_id,omitempty"`           // 链上交易ID
	Description   string    `gorm:"type:text" json:"description"`              // 描述
}

// TableName 指定表名
func (PaymentRecord) TableName() string {
	return "payment_records"
}
