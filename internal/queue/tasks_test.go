package queue

import (
	"encoding/json"
	"testing"

	"github.com/hashhost/billing/internal/config"
)

func TestNewManualInvoiceInstructionsTask(t *testing.T) {
	task, err := NewManualInvoiceInstructionsTask(ManualInvoiceInstructionsPayload{
		SessionID:  "s-1",
		MethodID:   "bitcoin",
		MethodName: "Bitcoin",
		Discount:   "5",
	})
	if err != nil {
		t.Fatalf("build task failed: %v", err)
	}
	if task.Type() != TaskManualInvoiceInstructions {
		t.Fatalf("unexpected task type: %s", task.Type())
	}
	var payload ManualInvoiceInstructionsPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		t.Fatalf("decode payload failed: %v", err)
	}
	if payload.MethodID != "bitcoin" || payload.Discount != "5" {
		t.Fatalf("unexpected payload: %+v", payload)
	}
}

func TestDisabledClientSkipsEnqueue(t *testing.T) {
	client, err := NewClient(&config.QueueConfig{Enabled: false})
	if err != nil {
		t.Fatalf("new client failed: %v", err)
	}
	if client.Enabled() {
		t.Fatalf("disabled client should report disabled")
	}
	if err := client.EnqueueBillingNotification(BillingNotificationPayload{SessionID: "s-1"}); err != nil {
		t.Fatalf("disabled enqueue should be noop, got %v", err)
	}
	var nilClient *Client
	if err := nilClient.EnqueueManualInvoiceInstructions(ManualInvoiceInstructionsPayload{}); err != nil {
		t.Fatalf("nil client enqueue should be noop, got %v", err)
	}
}

func TestBuildServerConfigDefaults(t *testing.T) {
	opt, cfg := BuildServerConfig(nil)
	if opt.Addr != "127.0.0.1:6379" {
		t.Fatalf("unexpected addr: %s", opt.Addr)
	}
	if cfg.Concurrency != 10 {
		t.Fatalf("unexpected concurrency: %d", cfg.Concurrency)
	}
	if cfg.Queues[CriticalQueue] != 2 || cfg.Queues[DefaultQueue] != 1 {
		t.Fatalf("unexpected queues: %+v", cfg.Queues)
	}
}
