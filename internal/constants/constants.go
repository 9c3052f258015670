package constants

// 支付方式标识
const (
	PaymentMethodBitcoin    = "bitcoin"
	PaymentMethodLightning  = "lightning"
	PaymentMethodUSDT       = "usdt"
	PaymentMethodApplePay   = "apple_pay"
	PaymentMethodGooglePay  = "google_pay"
	PaymentMethodCashApp    = "cash_app"
	PaymentMethodWire       = "wire"
	PaymentMethodACH        = "ach"
	PaymentMethodCreditCard = "credit_card"
)

// 支付方式分类
const (
	PaymentMethodCategoryRecurring = "recurring"
	PaymentMethodCategoryManual    = "manual"
)

// 选择状态
const (
	SelectionKindNone      = "none"
	SelectionKindManual    = "manual"
	SelectionKindRecurring = "recurring"
)

// 支付记录分类
const (
	PaymentCategoryServiceFee = "Service Fee"
	PaymentCategoryRigOrder   = "Rig Order"
)

// 支付记录状态
const (
	PaymentRecordStatusPaid    = "Paid"
	PaymentRecordStatusPending = "Pending"
	PaymentRecordStatusFailed  = "Failed"
)

// 历史列表筛选与排序
const (
	HistoryFilterAll     = "all"
	HistorySortKeyDate   = "date"
	HistorySortKeyAmount = "amount"
	SortDirectionAsc     = "asc"
	SortDirectionDesc    = "desc"
)

// 通知级别
const (
	NotificationSeveritySuccess = "success"
	NotificationSeverityError   = "error"
)

// 卡片
const (
	SavedCardBrandVisa = "visa"
	SavedCardLast4Len  = 4
)

// 会话
const (
	BillingSessionHeader = "X-Billing-Session"
	BillingSessionCtxKey = "billing_session_id"
)

// 队列名称
const (
	QueueDefault  = "default"
	QueueCritical = "critical"
)

// 异步任务类型
const (
	TaskBillingNotification          = "billing:notification"
	TaskBillingManualInvoiceGuidance = "billing:manual_invoice_instructions"
)

// 缓存键
const (
	CacheKeyHistorySummary = "billing:history:summary"
)

// 默认币种
const (
	BillingCurrencyDefault = "USD"
)
