package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/hashhost/billing/internal/constants"
)

func TestMethodSelectionInitialStateWithSeededCard(t *testing.T) {
	env := setupBillingServiceTest(t, true)
	sessionID := env.newSession(t)

	state, err := env.selection.Current(context.Background(), sessionID)
	if err != nil {
		t.Fatalf("current failed: %v", err)
	}
	if !state.IsRecurring() || state.MethodID != constants.PaymentMethodCreditCard {
		t.Fatalf("expected recurring credit_card, got %+v", state)
	}
}

func TestMethodSelectionInitialStateWithoutCard(t *testing.T) {
	env := setupBillingServiceTest(t, false)
	sessionID := env.newSession(t)

	state, err := env.selection.Current(context.Background(), sessionID)
	if err != nil {
		t.Fatalf("current failed: %v", err)
	}
	if state.Kind != constants.SelectionKindNone || state.Method != nil {
		t.Fatalf("expected none selected, got %+v", state)
	}
}

func TestMethodSelectionManual(t *testing.T) {
	env := setupBillingServiceTest(t, true)
	ctx := context.Background()
	sessionID := env.newSession(t)

	for i := 0; i < 2; i++ {
		result, err := env.selection.SelectManual(ctx, sessionID, constants.PaymentMethodLightning)
		if err != nil {
			t.Fatalf("select manual failed: %v", err)
		}
		if !result.State.IsManual() || result.State.MethodID != constants.PaymentMethodLightning {
			t.Fatalf("unexpected state: %+v", result.State)
		}
		if result.Notification.Message != MessageManualSelected {
			t.Fatalf("unexpected notification: %+v", result.Notification)
		}
	}
}

func TestMethodSelectionManualRejectsUnknownAndRecurring(t *testing.T) {
	env := setupBillingServiceTest(t, true)
	ctx := context.Background()
	sessionID := env.newSession(t)

	if _, err := env.selection.SelectManual(ctx, sessionID, "paypal"); !errors.Is(err, ErrPaymentMethodNotFound) {
		t.Fatalf("expected ErrPaymentMethodNotFound, got %v", err)
	}
	if _, err := env.selection.SelectManual(ctx, sessionID, constants.PaymentMethodCreditCard); !errors.Is(err, ErrPaymentMethodCategoryMismatch) {
		t.Fatalf("expected ErrPaymentMethodCategoryMismatch, got %v", err)
	}
	state, _ := env.selection.Current(ctx, sessionID)
	if !state.IsRecurring() {
		t.Fatalf("rejected selection must not change state, got %+v", state)
	}
}

func TestMethodSelectionRecurringRequiresDefaultCard(t *testing.T) {
	env := setupBillingServiceTest(t, false)
	ctx := context.Background()
	sessionID := env.newSession(t)

	result, err := env.selection.SelectRecurring(ctx, sessionID)
	if !errors.Is(err, ErrDefaultCardRequired) {
		t.Fatalf("expected ErrDefaultCardRequired, got %v", err)
	}
	if result == nil || !result.Notification.IsError() || result.Notification.Message != MessageDefaultCardMissing {
		t.Fatalf("expected error notification, got %+v", result)
	}
	if result.State.Kind != constants.SelectionKindNone {
		t.Fatalf("state should stay none, got %+v", result.State)
	}

	card, _, err := env.cards.Add(ctx, sessionID, AddCardInput{Number: "4111111111111111", Expiry: "12/29", CVC: "123"})
	if err != nil {
		t.Fatalf("add card failed: %v", err)
	}
	if _, err := env.selection.SelectRecurring(ctx, sessionID); !errors.Is(err, ErrDefaultCardRequired) {
		t.Fatalf("non-default card must not satisfy guard, got %v", err)
	}
	if _, _, err := env.cards.SetDefault(ctx, sessionID, card.ID); err != nil {
		t.Fatalf("set default failed: %v", err)
	}
	result, err = env.selection.SelectRecurring(ctx, sessionID)
	if err != nil {
		t.Fatalf("select recurring failed: %v", err)
	}
	if !result.State.IsRecurring() || result.Notification.Message != MessageRecurringSelected {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestMethodSelectionRecurringFailureKeepsManualState(t *testing.T) {
	env := setupBillingServiceTest(t, true)
	ctx := context.Background()
	sessionID := env.newSession(t)

	def, _ := env.cards.Default(ctx, sessionID)
	if _, err := env.selection.SelectManual(ctx, sessionID, constants.PaymentMethodUSDT); err != nil {
		t.Fatalf("select manual failed: %v", err)
	}
	if _, err := env.cards.Remove(ctx, sessionID, def.ID); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	result, err := env.selection.SelectRecurring(ctx, sessionID)
	if !errors.Is(err, ErrDefaultCardRequired) {
		t.Fatalf("expected ErrDefaultCardRequired, got %v", err)
	}
	if !result.State.IsManual() || result.State.MethodID != constants.PaymentMethodUSDT {
		t.Fatalf("state should remain manual usdt, got %+v", result.State)
	}
}

func TestMethodSelectionSelectDispatchesByCategory(t *testing.T) {
	env := setupBillingServiceTest(t, true)
	ctx := context.Background()
	sessionID := env.newSession(t)

	result, err := env.selection.Select(ctx, sessionID, constants.PaymentMethodWire)
	if err != nil || !result.State.IsManual() {
		t.Fatalf("expected manual wire, got %+v %v", result, err)
	}
	result, err = env.selection.Select(ctx, sessionID, constants.PaymentMethodCreditCard)
	if err != nil || !result.State.IsRecurring() {
		t.Fatalf("expected recurring, got %+v %v", result, err)
	}
	if _, err := env.selection.Select(ctx, sessionID, "unknown"); !errors.Is(err, ErrPaymentMethodNotFound) {
		t.Fatalf("expected ErrPaymentMethodNotFound, got %v", err)
	}
}

func TestMethodSelectionUnknownSession(t *testing.T) {
	env := setupBillingServiceTest(t, true)
	ctx := context.Background()

	if _, err := env.selection.Current(ctx, "missing"); !errors.Is(err, ErrBillingSessionNotFound) {
		t.Fatalf("expected ErrBillingSessionNotFound, got %v", err)
	}
	if _, err := env.selection.SelectManual(ctx, "missing", constants.PaymentMethodBitcoin); !errors.Is(err, ErrBillingSessionNotFound) {
		t.Fatalf("expected ErrBillingSessionNotFound, got %v", err)
	}
}

func TestMethodSelectionDescribe(t *testing.T) {
	env := setupBillingServiceTest(t, true)
	ctx := context.Background()
	sessionID := env.newSession(t)

	def, _ := env.cards.Default(ctx, sessionID)
	desc := env.selection.Describe(env.selection.StateOf(constants.PaymentMethodCreditCard), def)
	if desc == nil || desc.Title != "Credit Card selected" || !strings.Contains(desc.Detail, "5408") {
		t.Fatalf("unexpected recurring description: %+v", desc)
	}
	desc = env.selection.Describe(env.selection.StateOf(constants.PaymentMethodBitcoin), nil)
	if desc == nil || desc.Discount != "You'll receive a 5% discount!" {
		t.Fatalf("unexpected crypto description: %+v", desc)
	}
	if env.selection.Describe(env.selection.StateOf(""), nil) != nil {
		t.Fatalf("none selection should have no description")
	}
}
