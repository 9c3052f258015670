package models

import (
	"time"

	"github.com/hashhost/billing/internal/constants"
)

func seedDate(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// DefaultPaymentRecords 账单页初始的历史支付记录
func DefaultPaymentRecords() []PaymentRecord {
	return []PaymentRecord{
		{
			ID:          1,
			Date:        seedDate(2024, time.March, 15),
			Amount:      MustMoney("299.99"),
			MethodLabel: "Credit Card",
			Category:    constants.PaymentCategoryServiceFee,
			Status:      constants.PaymentRecordStatusPaid,
			Last4:       "5408",
			Description: "Monthly hosting service fee - March 2024",
		},
		{
			ID:            2,
			Date:          seedDate(2024, time.March, 1),
			Amount:        MustMoney("1499.99"),
			MethodLabel:   "Bitcoin",
			Category:      constants.PaymentCategoryRigOrder,
			Status:        constants.PaymentRecordStatusPending,
			TransactionID: "1A1zP1...",
			Description:   "Mining rig purchase - 1x S19 Pro",
		},
		{
			ID:          3,
			Date:        seedDate(2024, time.February, 15),
			Amount:      MustMoney("299.99"),
			MethodLabel: "Wire Transfer",
			Category:    constants.PaymentCategoryServiceFee,
			Status:      constants.PaymentRecordStatusPaid,
			Description: "Monthly hosting service fee - February 2024",
		},
	}
}

// DefaultSavedCard 新会话预置的默认卡
func DefaultSavedCard(sessionID string) SavedCard {
	return SavedCard{
		SessionID: sessionID,
		Last4:     "5408",
		Brand:     constants.SavedCardBrandVisa,
		IsDefault: true,
	}
}
