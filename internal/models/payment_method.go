package models

import "github.com/shopspring/decimal"

// PaymentMethod 支付方式目录条目（进程内常量，不入库）
type PaymentMethod struct {
	ID              string           `json:"id"`
	Name            string           `json:"name"`
	Category        string           `json:"category"`
	DiscountPercent *decimal.Decimal `json:"discount_percent,omitempty"`
}

// HasDiscount 是否带折扣
func (m PaymentMethod) HasDiscount() bool {
	return m.DiscountPercent != nil && m.DiscountPercent.IsPositive()
}
