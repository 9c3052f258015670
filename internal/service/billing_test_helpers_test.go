package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/hashhost/billing/internal/models"
	"github.com/hashhost/billing/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

type billingTestEnv struct {
	db        *gorm.DB
	catalog   *PaymentMethodCatalog
	cards     *SavedCardService
	selection *MethodSelectionService
	sessions  *BillingSessionService
	history   *PaymentHistoryService
	records   *repository.GormPaymentRecordRepository
}

func setupBillingServiceTest(t *testing.T, seedDefaultCard bool) *billingTestEnv {
	t.Helper()
	dsn := fmt.Sprintf("file:billing_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(models.MigrateTargets()...); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}

	sessionRepo := repository.NewBillingSessionRepository(db)
	cardRepo := repository.NewSavedCardRepository(db)
	recordRepo := repository.NewPaymentRecordRepository(db)
	catalog := NewPaymentMethodCatalog()
	publisher := NewNotificationPublisher(nil)
	cards := NewSavedCardService(cardRepo, sessionRepo, catalog, publisher)
	selection := NewMethodSelectionService(sessionRepo, catalog, cards, publisher)
	sessions := NewBillingSessionService(sessionRepo, cardRepo, catalog, cards, selection, BillingSessionOptions{
		SeedDefaultCard: seedDefaultCard,
		IdleTimeout:     time.Hour,
	})
	return &billingTestEnv{
		db:        db,
		catalog:   catalog,
		cards:     cards,
		selection: selection,
		sessions:  sessions,
		history:   NewPaymentHistoryService(recordRepo, time.Minute),
		records:   recordRepo,
	}
}

func (e *billingTestEnv) newSession(t *testing.T) string {
	t.Helper()
	session, err := e.sessions.Create(context.Background())
	if err != nil {
		t.Fatalf("create session failed: %v", err)
	}
	return session.ID
}

func (e *billingTestEnv) defaultCount(t *testing.T, sessionID string) int64 {
	t.Helper()
	var count int64
	if err := e.db.Model(&models.SavedCard{}).
		Where("session_id = ? AND is_default = ?", sessionID, true).
		Count(&count).Error; err != nil {
		t.Fatalf("count defaults failed: %v", err)
	}
	return count
}
