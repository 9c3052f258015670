package repository

import (
	"fmt"
	"testing"
	"time"

	"github.com/hashhost/billing/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupBillingRepositoryDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:billing_repository_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(models.MigrateTargets()...); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	return db
}

func createTestSession(t *testing.T, db *gorm.DB, id string, lastSeen time.Time) {
	t.Helper()
	if err := NewBillingSessionRepository(db).Create(&models.BillingSession{ID: id, LastSeenAt: lastSeen}); err != nil {
		t.Fatalf("create session failed: %v", err)
	}
}
