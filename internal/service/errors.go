package service

import "errors"

var (
	// ErrBillingSessionNotFound 账单会话不存在
	ErrBillingSessionNotFound = errors.New("billing session not found")
	// ErrCardInputRequired 卡号、有效期、CVC 不能为空
	ErrCardInputRequired = errors.New("card number, expiry and cvc are required")
	// ErrPaymentMethodNotFound 支付方式不存在
	ErrPaymentMethodNotFound = errors.New("payment method not found")
	// ErrPaymentMethodCategoryMismatch 支付方式分类不匹配
	ErrPaymentMethodCategoryMismatch = errors.New("payment method category mismatch")
	// ErrPaymentMethodDuplicate 目录中存在重复标识
	ErrPaymentMethodDuplicate = errors.New("duplicate payment method id")
	// ErrDefaultCardRequired 自动扣款需要默认卡
	ErrDefaultCardRequired = errors.New("default card required")
	// ErrPaymentRecordNotFound 支付记录不存在
	ErrPaymentRecordNotFound = errors.New("payment record not found")
	// ErrHistorySortInvalid 排序参数无效
	ErrHistorySortInvalid = errors.New("history sort invalid")
	// ErrHistoryFilterInvalid 筛选参数无效
	ErrHistoryFilterInvalid = errors.New("history filter invalid")
)
