package repository

import (
	"testing"
	"time"

	"github.com/hashhost/billing/internal/models"
)

func TestSavedCardRepositorySetDefaultSingleDefault(t *testing.T) {
	db := setupBillingRepositoryDB(t)
	repo := NewSavedCardRepository(db)
	createTestSession(t, db, "s-1", time.Now())

	cards := []*models.SavedCard{
		{SessionID: "s-1", Last4: "5408", Brand: "visa", IsDefault: true},
		{SessionID: "s-1", Last4: "1111", Brand: "visa"},
		{SessionID: "s-1", Last4: "2222", Brand: "visa"},
	}
	for _, card := range cards {
		if err := repo.Create(card); err != nil {
			t.Fatalf("create card failed: %v", err)
		}
	}

	found, err := repo.SetDefault("s-1", cards[2].ID)
	if err != nil || !found {
		t.Fatalf("set default failed: found=%v err=%v", found, err)
	}
	count, err := repo.CountDefault("s-1")
	if err != nil {
		t.Fatalf("count default failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected one default, got %d", count)
	}
	def, err := repo.GetDefault("s-1")
	if err != nil || def == nil || def.ID != cards[2].ID {
		t.Fatalf("unexpected default: %+v %v", def, err)
	}
}

func TestSavedCardRepositorySetDefaultMissingLeavesFlags(t *testing.T) {
	db := setupBillingRepositoryDB(t)
	repo := NewSavedCardRepository(db)
	createTestSession(t, db, "s-1", time.Now())

	card := &models.SavedCard{SessionID: "s-1", Last4: "5408", Brand: "visa", IsDefault: true}
	if err := repo.Create(card); err != nil {
		t.Fatalf("create card failed: %v", err)
	}
	found, err := repo.SetDefault("s-1", card.ID+100)
	if err != nil {
		t.Fatalf("set default failed: %v", err)
	}
	if found {
		t.Fatalf("missing card should report not found")
	}
	def, _ := repo.GetDefault("s-1")
	if def == nil || def.ID != card.ID {
		t.Fatalf("existing default should be kept, got %+v", def)
	}
}

func TestSavedCardRepositoryScopedBySession(t *testing.T) {
	db := setupBillingRepositoryDB(t)
	repo := NewSavedCardRepository(db)
	createTestSession(t, db, "s-1", time.Now())
	createTestSession(t, db, "s-2", time.Now())

	mine := &models.SavedCard{SessionID: "s-1", Last4: "1234", Brand: "visa", IsDefault: true}
	other := &models.SavedCard{SessionID: "s-2", Last4: "9876", Brand: "visa", IsDefault: true}
	if err := repo.Create(mine); err != nil {
		t.Fatalf("create card failed: %v", err)
	}
	if err := repo.Create(other); err != nil {
		t.Fatalf("create card failed: %v", err)
	}

	if got, err := repo.GetByID("s-2", mine.ID); err != nil || got != nil {
		t.Fatalf("cross session lookup should miss: %+v %v", got, err)
	}
	if found, err := repo.SetDefault("s-2", mine.ID); err != nil || found {
		t.Fatalf("cross session set default should miss: %v %v", found, err)
	}
	removed, err := repo.Delete("s-2", mine.ID)
	if err != nil || removed {
		t.Fatalf("cross session delete should miss: %v %v", removed, err)
	}
	list, err := repo.ListBySession("s-2")
	if err != nil || len(list) != 1 || list[0].ID != other.ID {
		t.Fatalf("unexpected s-2 cards: %+v %v", list, err)
	}
	if count, _ := repo.CountDefault("s-1"); count != 1 {
		t.Fatalf("s-1 default should be untouched, got %d", count)
	}
}

func TestSavedCardRepositoryDelete(t *testing.T) {
	db := setupBillingRepositoryDB(t)
	repo := NewSavedCardRepository(db)
	createTestSession(t, db, "s-1", time.Now())

	card := &models.SavedCard{SessionID: "s-1", Last4: "4242", Brand: "visa"}
	if err := repo.Create(card); err != nil {
		t.Fatalf("create card failed: %v", err)
	}
	removed, err := repo.Delete("s-1", card.ID)
	if err != nil || !removed {
		t.Fatalf("delete failed: %v %v", removed, err)
	}
	removed, err = repo.Delete("s-1", card.ID)
	if err != nil || removed {
		t.Fatalf("second delete should be a miss: %v %v", removed, err)
	}
	if def, err := repo.GetDefault("s-1"); err != nil || def != nil {
		t.Fatalf("expected no default: %+v %v", def, err)
	}
}
