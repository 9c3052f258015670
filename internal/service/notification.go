package service

import (
	"github.com/hashhost/billing/internal/constants"
	"github.com/hashhost/billing/internal/logger"
	"github.com/hashhost/billing/internal/models"
	"github.com/hashhost/billing/internal/queue"
)

// 用户可见的提示文案
const (
	MessageCardAdded          = "Payment method added successfully"
	MessageCardRemoved        = "Payment method removed"
	MessageDefaultCardUpdated = "Default payment method updated"
	MessageManualSelected     = "Manual payment method selected successfully"
	MessageRecurringSelected  = "Automatic payment method selected successfully"
	MessageDefaultCardMissing = "Please add a card or set a default card first"
)

// 通知动作
const (
	NotificationActionCardAdded         = "card_added"
	NotificationActionCardRemoved       = "card_removed"
	NotificationActionDefaultCardSet    = "default_card_set"
	NotificationActionManualSelected    = "manual_selected"
	NotificationActionRecurringSelected = "recurring_selected"
	NotificationActionRecurringRejected = "recurring_rejected"
)

// Notification 用户可见的操作结果
type Notification struct {
	Severity string `json:"severity"`
	Message  string `json:"message"`
}

// SuccessNotification 成功提示
func SuccessNotification(message string) Notification {
	return Notification{Severity: constants.NotificationSeveritySuccess, Message: message}
}

// ErrorNotification 错误提示
func ErrorNotification(message string) Notification {
	return Notification{Severity: constants.NotificationSeverityError, Message: message}
}

// IsError 是否为错误提示
func (n Notification) IsError() bool {
	return n.Severity == constants.NotificationSeverityError
}

// NotificationPublisher 记录并投递通知
type NotificationPublisher struct {
	queue *queue.Client
}

// NewNotificationPublisher 创建通知投递器，queue 可为空
func NewNotificationPublisher(queueClient *queue.Client) *NotificationPublisher {
	return &NotificationPublisher{queue: queueClient}
}

// Publish 投递一条通知，队列失败只记录日志
func (p *NotificationPublisher) Publish(sessionID, action string, n Notification) {
	logger.Infow("billing_notification",
		"session_id", sessionID,
		"action", action,
		"severity", n.Severity,
		"message", n.Message,
	)
	if p == nil || !p.queue.Enabled() {
		return
	}
	err := p.queue.EnqueueBillingNotification(queue.BillingNotificationPayload{
		SessionID: sessionID,
		Action:    action,
		Severity:  n.Severity,
		Message:   n.Message,
	})
	if err != nil {
		logger.Warnw("billing_notification_enqueue_failed",
			"session_id", sessionID,
			"action", action,
			"error", err,
		)
	}
}

// PublishManualInstructions 投递手动支付说明任务
func (p *NotificationPublisher) PublishManualInstructions(sessionID string, method models.PaymentMethod) {
	if p == nil || !p.queue.Enabled() {
		return
	}
	payload := queue.ManualInvoiceInstructionsPayload{
		SessionID:  sessionID,
		MethodID:   method.ID,
		MethodName: method.Name,
	}
	if method.HasDiscount() {
		payload.Discount = method.DiscountPercent.String()
	}
	if err := p.queue.EnqueueManualInvoiceInstructions(payload); err != nil {
		logger.Warnw("billing_manual_instructions_enqueue_failed",
			"session_id", sessionID,
			"method_id", method.ID,
			"error", err,
		)
	}
}
