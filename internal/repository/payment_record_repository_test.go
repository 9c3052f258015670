package repository

import (
	"testing"

	"github.com/hashhost/billing/internal/models"
)

func TestPaymentRecordRepositorySeedIfEmpty(t *testing.T) {
	db := setupBillingRepositoryDB(t)
	repo := NewPaymentRecordRepository(db)

	inserted, err := repo.SeedIfEmpty(models.DefaultPaymentRecords())
	if err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	if inserted != 3 {
		t.Fatalf("expected 3 inserted, got %d", inserted)
	}
	inserted, err = repo.SeedIfEmpty(models.DefaultPaymentRecords())
	if err != nil {
		t.Fatalf("second seed failed: %v", err)
	}
	if inserted != 0 {
		t.Fatalf("second seed should be a noop, got %d", inserted)
	}
	count, err := repo.Count()
	if err != nil || count != 3 {
		t.Fatalf("unexpected count: %d %v", count, err)
	}
}

func TestPaymentRecordRepositoryListAllKeepsOrderAndAmounts(t *testing.T) {
	db := setupBillingRepositoryDB(t)
	repo := NewPaymentRecordRepository(db)
	if _, err := repo.SeedIfEmpty(models.DefaultPaymentRecords()); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	records, err := repo.ListAll()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(records) != 3 || records[0].ID != 1 || records[2].ID != 3 {
		t.Fatalf("unexpected records: %+v", records)
	}
	if records[1].Amount.String() != "1499.99" {
		t.Fatalf("unexpected amount: %s", records[1].Amount)
	}
	if got, err := repo.GetByID(99); err != nil || got != nil {
		t.Fatalf("missing record should be nil: %+v %v", got, err)
	}
}
