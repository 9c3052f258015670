//go:build integration
// +build integration

package repository

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/hashhost/billing/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// setupPostgresIntegrationDB 初始化 PostgreSQL 集成测试数据库。
func setupPostgresIntegrationDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := strings.TrimSpace(os.Getenv("TEST_POSTGRES_DSN"))
	if dsn == "" {
		t.Skip("skip postgres integration test: TEST_POSTGRES_DSN is empty")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open postgres failed: %v", err)
	}

	cleanupModels := []interface{}{
		&models.SavedCard{},
		&models.BillingSession{},
		&models.PaymentRecord{},
	}
	_ = db.Migrator().DropTable(cleanupModels...)

	if err := db.AutoMigrate(models.MigrateTargets()...); err != nil {
		t.Fatalf("migrate postgres models failed: %v", err)
	}

	t.Cleanup(func() {
		_ = db.Migrator().DropTable(cleanupModels...)
		sqlDB, err := db.DB()
		if err == nil {
			_ = sqlDB.Close()
		}
	})

	return db
}

func TestPostgresSavedCardSetDefault(t *testing.T) {
	db := setupPostgresIntegrationDB(t)
	createTestSession(t, db, "pg-session", time.Now())

	repo := NewSavedCardRepository(db)
	first := &models.SavedCard{SessionID: "pg-session", Last4: "5408", Brand: "visa", IsDefault: true}
	second := &models.SavedCard{SessionID: "pg-session", Last4: "4242", Brand: "visa"}
	for _, card := range []*models.SavedCard{first, second} {
		if err := repo.Create(card); err != nil {
			t.Fatalf("create card failed: %v", err)
		}
	}
	found, err := repo.SetDefault("pg-session", second.ID)
	if err != nil || !found {
		t.Fatalf("set default failed: %v %v", found, err)
	}
	count, err := repo.CountDefault("pg-session")
	if err != nil || count != 1 {
		t.Fatalf("expected one default on postgres, got %d %v", count, err)
	}
}

func TestPostgresPaymentRecordMoneyRoundTrip(t *testing.T) {
	db := setupPostgresIntegrationDB(t)
	repo := NewPaymentRecordRepository(db)
	if _, err := repo.SeedIfEmpty(models.DefaultPaymentRecords()); err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	records, err := repo.ListAll()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(records) != 3 || records[0].Amount.String() != "299.99" {
		t.Fatalf("unexpected records: %+v", records)
	}
}
