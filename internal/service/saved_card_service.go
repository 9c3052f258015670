package service

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/hashhost/billing/internal/constants"
	"github.com/hashhost/billing/internal/logger"
	"github.com/hashhost/billing/internal/models"
	"github.com/hashhost/billing/internal/repository"
)

// AddCardInput 添加卡片输入
type AddCardInput struct {
	Number string `json:"number"`
	Expiry string `json:"expiry"`
	CVC    string `json:"cvc"`
}

// SavedCardService 已保存卡片服务
type SavedCardService struct {
	cardRepo    repository.SavedCardRepository
	sessionRepo repository.BillingSessionRepository
	catalog     *PaymentMethodCatalog
	publisher   *NotificationPublisher
}

// NewSavedCardService 创建卡片服务
func NewSavedCardService(
	cardRepo repository.SavedCardRepository,
	sessionRepo repository.BillingSessionRepository,
	catalog *PaymentMethodCatalog,
	publisher *NotificationPublisher,
) *SavedCardService {
	return &SavedCardService{
		cardRepo:    cardRepo,
		sessionRepo: sessionRepo,
		catalog:     catalog,
		publisher:   publisher,
	}
}

// Add 保存一张新卡，新卡永远不是默认卡
func (s *SavedCardService) Add(ctx context.Context, sessionID string, input AddCardInput) (*models.SavedCard, Notification, error) {
	number := strings.TrimSpace(input.Number)
	if number == "" || strings.TrimSpace(input.Expiry) == "" || strings.TrimSpace(input.CVC) == "" {
		return nil, Notification{}, ErrCardInputRequired
	}
	card := &models.SavedCard{
		SessionID: sessionID,
		Last4:     lastDigits(number, constants.SavedCardLast4Len),
		Brand:     constants.SavedCardBrandVisa,
		IsDefault: false,
	}
	if err := s.cardRepo.Create(card); err != nil {
		return nil, Notification{}, err
	}
	logger.Infow("billing_card_added",
		"session_id", sessionID,
		"card_id", card.ID,
		"last4", card.Last4,
	)
	n := SuccessNotification(MessageCardAdded)
	s.publisher.Publish(sessionID, NotificationActionCardAdded, n)
	return card, n, nil
}

// Remove 删除卡片，不会自动提升新的默认卡
func (s *SavedCardService) Remove(ctx context.Context, sessionID string, cardID uint) (Notification, error) {
	removed, err := s.cardRepo.Delete(sessionID, cardID)
	if err != nil {
		return Notification{}, err
	}
	if !removed {
		logger.Infow("billing_card_remove_missing",
			"session_id", sessionID,
			"card_id", cardID,
		)
	} else {
		logger.Infow("billing_card_removed",
			"session_id", sessionID,
			"card_id", cardID,
		)
	}
	n := SuccessNotification(MessageCardRemoved)
	s.publisher.Publish(sessionID, NotificationActionCardRemoved, n)
	return n, nil
}

// SetDefault 设置默认卡并切换到自动扣款，目标不存在时不修改任何卡片
func (s *SavedCardService) SetDefault(ctx context.Context, sessionID string, cardID uint) (*models.SavedCard, Notification, error) {
	found, err := s.cardRepo.SetDefault(sessionID, cardID)
	if err != nil {
		return nil, Notification{}, err
	}
	n := SuccessNotification(MessageDefaultCardUpdated)
	if !found {
		logger.Infow("billing_card_default_missing",
			"session_id", sessionID,
			"card_id", cardID,
		)
		s.publisher.Publish(sessionID, NotificationActionDefaultCardSet, n)
		return nil, n, nil
	}
	if recurring, ok := s.catalog.DefaultRecurring(); ok && s.sessionRepo != nil {
		if err := s.sessionRepo.UpdateSelectedMethod(sessionID, recurring.ID); err != nil {
			return nil, Notification{}, err
		}
	}
	card, err := s.cardRepo.GetByID(sessionID, cardID)
	if err != nil {
		return nil, Notification{}, err
	}
	logger.Infow("billing_card_default_set",
		"session_id", sessionID,
		"card_id", cardID,
	)
	s.publisher.Publish(sessionID, NotificationActionDefaultCardSet, n)
	return card, n, nil
}

// List 列出会话下的全部卡片
func (s *SavedCardService) List(ctx context.Context, sessionID string) ([]models.SavedCard, error) {
	return s.cardRepo.ListBySession(sessionID)
}

// Default 返回默认卡，不存在时返回 nil
func (s *SavedCardService) Default(ctx context.Context, sessionID string) (*models.SavedCard, error) {
	return s.cardRepo.GetDefault(sessionID)
}

// HasDefault 是否存在默认卡
func (s *SavedCardService) HasDefault(ctx context.Context, sessionID string) (bool, error) {
	count, err := s.cardRepo.CountDefault(sessionID)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func lastDigits(number string, n int) string {
	if utf8.RuneCountInString(number) <= n {
		return number
	}
	runes := []rune(number)
	return string(runes[len(runes)-n:])
}
