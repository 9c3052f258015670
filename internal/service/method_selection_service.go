package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/hashhost/billing/internal/constants"
	"github.com/hashhost/billing/internal/logger"
	"github.com/hashhost/billing/internal/models"
	"github.com/hashhost/billing/internal/repository"
)

// SelectionState 当前支付方式选择
type SelectionState struct {
	Kind     string                `json:"kind"`
	MethodID string                `json:"method_id,omitempty"`
	Method   *models.PaymentMethod `json:"method,omitempty"`
}

// IsRecurring 是否自动扣款
func (s SelectionState) IsRecurring() bool {
	return s.Kind == constants.SelectionKindRecurring
}

// IsManual 是否手动支付
func (s SelectionState) IsManual() bool {
	return s.Kind == constants.SelectionKindManual
}

// SelectionDescription 选择确认文案
type SelectionDescription struct {
	Title    string `json:"title"`
	Detail   string `json:"detail"`
	Discount string `json:"discount,omitempty"`
}

// SelectionResult 选择操作结果
type SelectionResult struct {
	State        SelectionState `json:"state"`
	Notification Notification   `json:"notification"`
}

// MethodSelectionService 支付方式选择控制器
type MethodSelectionService struct {
	sessionRepo repository.BillingSessionRepository
	catalog     *PaymentMethodCatalog
	cards       *SavedCardService
	publisher   *NotificationPublisher
}

// NewMethodSelectionService 创建选择控制器
func NewMethodSelectionService(
	sessionRepo repository.BillingSessionRepository,
	catalog *PaymentMethodCatalog,
	cards *SavedCardService,
	publisher *NotificationPublisher,
) *MethodSelectionService {
	return &MethodSelectionService{
		sessionRepo: sessionRepo,
		catalog:     catalog,
		cards:       cards,
		publisher:   publisher,
	}
}

// Current 返回会话当前选择
func (s *MethodSelectionService) Current(ctx context.Context, sessionID string) (SelectionState, error) {
	session, err := s.sessionRepo.GetByID(sessionID)
	if err != nil {
		return SelectionState{}, err
	}
	if session == nil {
		return SelectionState{}, ErrBillingSessionNotFound
	}
	return s.StateOf(session.SelectedMethod), nil
}

// StateOf 将持久化的方式标识还原为选择状态
func (s *MethodSelectionService) StateOf(methodID string) SelectionState {
	methodID = strings.TrimSpace(methodID)
	if methodID == "" {
		return SelectionState{Kind: constants.SelectionKindNone}
	}
	method, ok := s.catalog.ByID(methodID)
	if !ok {
		logger.Warnw("billing_selection_unknown_method", "method_id", methodID)
		return SelectionState{Kind: constants.SelectionKindNone}
	}
	kind := constants.SelectionKindManual
	if method.Category == constants.PaymentMethodCategoryRecurring {
		kind = constants.SelectionKindRecurring
	}
	return SelectionState{Kind: kind, MethodID: method.ID, Method: &method}
}

// SelectManual 选择手动支付方式，重复选择会再次提示
func (s *MethodSelectionService) SelectManual(ctx context.Context, sessionID, methodID string) (*SelectionResult, error) {
	method, ok := s.catalog.ByID(methodID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrPaymentMethodNotFound, methodID)
	}
	if method.Category != constants.PaymentMethodCategoryManual {
		return nil, fmt.Errorf("%w: %s is %s", ErrPaymentMethodCategoryMismatch, method.ID, method.Category)
	}
	if err := s.ensureSession(sessionID); err != nil {
		return nil, err
	}
	if err := s.sessionRepo.UpdateSelectedMethod(sessionID, method.ID); err != nil {
		return nil, err
	}
	logger.Infow("billing_selection_manual",
		"session_id", sessionID,
		"method_id", method.ID,
	)
	n := SuccessNotification(MessageManualSelected)
	s.publisher.Publish(sessionID, NotificationActionManualSelected, n)
	s.publisher.PublishManualInstructions(sessionID, method)
	return &SelectionResult{State: s.StateOf(method.ID), Notification: n}, nil
}

// SelectRecurring 切换到自动扣款，没有默认卡时状态不变并返回 ErrDefaultCardRequired
func (s *MethodSelectionService) SelectRecurring(ctx context.Context, sessionID string) (*SelectionResult, error) {
	recurring, ok := s.catalog.DefaultRecurring()
	if !ok {
		return nil, fmt.Errorf("%w: no recurring method", ErrPaymentMethodNotFound)
	}
	session, err := s.sessionRepo.GetByID(sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrBillingSessionNotFound
	}
	hasDefault, err := s.cards.HasDefault(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !hasDefault {
		logger.Infow("billing_selection_recurring_rejected", "session_id", sessionID)
		n := ErrorNotification(MessageDefaultCardMissing)
		s.publisher.Publish(sessionID, NotificationActionRecurringRejected, n)
		return &SelectionResult{State: s.StateOf(session.SelectedMethod), Notification: n}, ErrDefaultCardRequired
	}
	if err := s.sessionRepo.UpdateSelectedMethod(sessionID, recurring.ID); err != nil {
		return nil, err
	}
	logger.Infow("billing_selection_recurring",
		"session_id", sessionID,
		"method_id", recurring.ID,
	)
	n := SuccessNotification(MessageRecurringSelected)
	s.publisher.Publish(sessionID, NotificationActionRecurringSelected, n)
	return &SelectionResult{State: s.StateOf(recurring.ID), Notification: n}, nil
}

// Select 按目录分类分派到手动或自动选择
func (s *MethodSelectionService) Select(ctx context.Context, sessionID, methodID string) (*SelectionResult, error) {
	method, ok := s.catalog.ByID(methodID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrPaymentMethodNotFound, methodID)
	}
	if method.Category == constants.PaymentMethodCategoryRecurring {
		return s.SelectRecurring(ctx, sessionID)
	}
	return s.SelectManual(ctx, sessionID, method.ID)
}

// Describe 生成当前选择的确认文案
func (s *MethodSelectionService) Describe(state SelectionState, defaultCard *models.SavedCard) *SelectionDescription {
	if state.Method == nil {
		return nil
	}
	desc := &SelectionDescription{Title: fmt.Sprintf("%s selected", state.Method.Name)}
	if state.Method.HasDiscount() {
		desc.Discount = fmt.Sprintf("You'll receive a %s%% discount!", state.Method.DiscountPercent.String())
	}
	switch state.Kind {
	case constants.SelectionKindRecurring:
		desc.Detail = "Your card will be charged automatically when invoices are due."
		if defaultCard != nil {
			desc.Detail = fmt.Sprintf("Your %s ending in %s will be charged automatically when invoices are due.",
				strings.ToUpper(defaultCard.Brand), defaultCard.Last4)
		}
	case constants.SelectionKindManual:
		desc.Detail = "You'll receive an invoice via email with payment instructions."
	}
	return desc
}

func (s *MethodSelectionService) ensureSession(sessionID string) error {
	session, err := s.sessionRepo.GetByID(sessionID)
	if err != nil {
		return err
	}
	if session == nil {
		return ErrBillingSessionNotFound
	}
	return nil
}
