package service

import (
	"context"
	"time"

	"github.com/hashhost/billing/internal/logger"
	"github.com/hashhost/billing/internal/models"
	"github.com/hashhost/billing/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BillingSessionOptions 会话初始化选项
type BillingSessionOptions struct {
	SeedDefaultCard bool
	IdleTimeout     time.Duration
}

// BillingOverview 账单页一次性加载的数据
type BillingOverview struct {
	Session     *models.BillingSession `json:"session"`
	Cards       []models.SavedCard     `json:"cards"`
	DefaultCard *models.SavedCard      `json:"default_card"`
	Selection   SelectionState         `json:"selection"`
	Description *SelectionDescription  `json:"description,omitempty"`
	Methods     PaymentMethodGroups    `json:"methods"`
}

// BillingSessionService 账单会话服务
type BillingSessionService struct {
	sessionRepo repository.BillingSessionRepository
	cardRepo    repository.SavedCardRepository
	catalog     *PaymentMethodCatalog
	cards       *SavedCardService
	selection   *MethodSelectionService
	options     BillingSessionOptions
}

// NewBillingSessionService 创建会话服务
func NewBillingSessionService(
	sessionRepo repository.BillingSessionRepository,
	cardRepo repository.SavedCardRepository,
	catalog *PaymentMethodCatalog,
	cards *SavedCardService,
	selection *MethodSelectionService,
	options BillingSessionOptions,
) *BillingSessionService {
	return &BillingSessionService{
		sessionRepo: sessionRepo,
		cardRepo:    cardRepo,
		catalog:     catalog,
		cards:       cards,
		selection:   selection,
		options:     options,
	}
}

// Create 创建会话，预置默认卡时初始状态为自动扣款
func (s *BillingSessionService) Create(ctx context.Context) (*models.BillingSession, error) {
	now := time.Now()
	session := &models.BillingSession{
		ID:         uuid.NewString(),
		LastSeenAt: now,
	}
	recurring, hasRecurring := s.catalog.DefaultRecurring()
	if s.options.SeedDefaultCard && hasRecurring {
		session.SelectedMethod = recurring.ID
	}
	err := s.sessionRepo.Transaction(func(tx *gorm.DB) error {
		if err := s.sessionRepo.WithTx(tx).Create(session); err != nil {
			return err
		}
		if !s.options.SeedDefaultCard {
			return nil
		}
		card := models.DefaultSavedCard(session.ID)
		return s.cardRepo.WithTx(tx).Create(&card)
	})
	if err != nil {
		return nil, err
	}
	logger.Infow("billing_session_created",
		"session_id", session.ID,
		"seed_default_card", s.options.SeedDefaultCard,
		"selected_method", session.SelectedMethod,
	)
	return session, nil
}

// Get 获取会话并刷新访问时间
func (s *BillingSessionService) Get(ctx context.Context, id string) (*models.BillingSession, error) {
	session, err := s.sessionRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrBillingSessionNotFound
	}
	now := time.Now()
	if err := s.sessionRepo.Touch(id, now); err != nil {
		logger.Warnw("billing_session_touch_failed", "session_id", id, "error", err)
	} else {
		session.LastSeenAt = now
	}
	return session, nil
}

// Overview 汇总卡片、选择状态与目录
func (s *BillingSessionService) Overview(ctx context.Context, id string) (*BillingOverview, error) {
	session, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	cards, err := s.cards.List(ctx, id)
	if err != nil {
		return nil, err
	}
	defaultCard, err := s.cards.Default(ctx, id)
	if err != nil {
		return nil, err
	}
	state := s.selection.StateOf(session.SelectedMethod)
	return &BillingOverview{
		Session:     session,
		Cards:       cards,
		DefaultCard: defaultCard,
		Selection:   state,
		Description: s.selection.Describe(state, defaultCard),
		Methods:     s.catalog.Groups(),
	}, nil
}

// PurgeIdle 清理超过闲置时长的会话
func (s *BillingSessionService) PurgeIdle(ctx context.Context, now time.Time) (int64, error) {
	if s.options.IdleTimeout <= 0 {
		return 0, nil
	}
	removed, err := s.sessionRepo.DeleteIdleBefore(now.Add(-s.options.IdleTimeout))
	if err != nil {
		return 0, err
	}
	if removed > 0 {
		logger.Infow("billing_session_purged", "removed", removed)
	}
	return removed, nil
}
