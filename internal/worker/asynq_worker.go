package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/hashhost/billing/internal/logger"
	"github.com/hashhost/billing/internal/provider"
	"github.com/hashhost/billing/internal/queue"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskBillingNotification, c.handleBillingNotification)
	mux.HandleFunc(queue.TaskManualInvoiceInstructions, c.handleManualInvoiceInstructions)
}

func (c *Consumer) handleBillingNotification(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_billing_notification_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.BillingNotificationPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_billing_notification_unmarshal_failed", "error", err)
		return fmt.Errorf("%w: %v", asynq.SkipRetry, err)
	}
	if strings.TrimSpace(payload.SessionID) == "" || strings.TrimSpace(payload.Message) == "" {
		logger.Debugw("worker_billing_notification_skip_invalid_payload", "session_id", payload.SessionID)
		return nil
	}
	session, err := c.BillingSessionRepo.GetByID(payload.SessionID)
	if err != nil {
		logger.Warnw("worker_billing_notification_fetch_session_failed", "session_id", payload.SessionID, "error", err)
		return err
	}
	if session == nil {
		logger.Debugw("worker_billing_notification_skip_session_not_found", "session_id", payload.SessionID)
		return nil
	}
	logger.Infow("worker_billing_notification_delivered",
		"session_id", payload.SessionID,
		"action", payload.Action,
		"severity", payload.Severity,
		"message", payload.Message,
	)
	return nil
}

func (c *Consumer) handleManualInvoiceInstructions(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_manual_instructions_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.ManualInvoiceInstructionsPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_manual_instructions_unmarshal_failed", "error", err)
		return fmt.Errorf("%w: %v", asynq.SkipRetry, err)
	}
	session, err := c.BillingSessionRepo.GetByID(payload.SessionID)
	if err != nil {
		logger.Warnw("worker_manual_instructions_fetch_session_failed", "session_id", payload.SessionID, "error", err)
		return err
	}
	if session == nil {
		logger.Debugw("worker_manual_instructions_skip_session_not_found", "session_id", payload.SessionID)
		return nil
	}
	if session.SelectedMethod != payload.MethodID {
		logger.Debugw("worker_manual_instructions_skip_selection_changed",
			"session_id", payload.SessionID,
			"method_id", payload.MethodID,
			"current", session.SelectedMethod,
		)
		return nil
	}
	body := buildManualInstructions(payload, c.Config.Billing.Currency)
	if body == "" {
		logger.Debugw("worker_manual_instructions_skip_invalid_payload", "method_id", payload.MethodID)
		return nil
	}
	logger.Infow("worker_manual_instructions_ready",
		"session_id", payload.SessionID,
		"method_id", payload.MethodID,
		"body", body,
	)
	return nil
}

// buildManualInstructions 生成手动支付说明正文
func buildManualInstructions(payload queue.ManualInvoiceInstructionsPayload, currency string) string {
	name := strings.TrimSpace(payload.MethodName)
	if name == "" {
		name = strings.TrimSpace(payload.MethodID)
	}
	if name == "" {
		return ""
	}
	currency = strings.TrimSpace(currency)
	if currency == "" {
		currency = "USD"
	}
	lines := []string{
		fmt.Sprintf("You selected %s for service fee invoices.", name),
		fmt.Sprintf("Each invoice will be issued in %s and include %s payment instructions.", currency, name),
	}
	if discount := strings.TrimSpace(payload.Discount); discount != "" {
		lines = append(lines, fmt.Sprintf("A %s%% discount is applied when paying with %s.", discount, name))
	}
	return strings.Join(lines, "\n")
}
