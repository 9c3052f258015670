package queue

import (
	"encoding/json"

	"github.com/hashhost/billing/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskBillingNotification 账单页操作通知
	TaskBillingNotification = constants.TaskBillingNotification
	// TaskManualInvoiceInstructions 手动支付说明邮件
	TaskManualInvoiceInstructions = constants.TaskBillingManualInvoiceGuidance
)

// BillingNotificationPayload 通知任务载荷
type BillingNotificationPayload struct {
	SessionID string `json:"session_id"`
	Action    string `json:"action"`
	Severity  string `json:"severity"`
	Message   string `json:"message"`
}

// ManualInvoiceInstructionsPayload 手动支付说明任务载荷
type ManualInvoiceInstructionsPayload struct {
	SessionID  string `json:"session_id"`
	MethodID   string `json:"method_id"`
	MethodName string `json:"method_name"`
	Discount   string `json:"discount,omitempty"`
}

// NewBillingNotificationTask 创建通知任务
func NewBillingNotificationTask(payload BillingNotificationPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskBillingNotification, body), nil
}

// NewManualInvoiceInstructionsTask 创建手动支付说明任务
func NewManualInvoiceInstructionsTask(payload ManualInvoiceInstructionsPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskManualInvoiceInstructions, body), nil
}
