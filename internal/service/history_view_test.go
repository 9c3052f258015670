package service

import (
	"testing"
	"time"

	"github.com/hashhost/billing/internal/constants"
	"github.com/hashhost/billing/internal/models"
)

func recordIDs(records []models.PaymentRecord) []uint {
	ids := make([]uint, 0, len(records))
	for _, record := range records {
		ids = append(ids, record.ID)
	}
	return ids
}

func equalIDs(a, b []uint) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestAggregatePaymentRecordsSeed(t *testing.T) {
	summary := AggregatePaymentRecords(models.DefaultPaymentRecords())
	if summary.ServiceFeeTotal.String() != "599.98" {
		t.Fatalf("unexpected service fee total: %s", summary.ServiceFeeTotal)
	}
	if summary.RigOrderTotal.String() != "1499.99" {
		t.Fatalf("unexpected rig order total: %s", summary.RigOrderTotal)
	}
	if summary.GrandTotal.String() != "2099.97" {
		t.Fatalf("unexpected grand total: %s", summary.GrandTotal)
	}
	if summary.Count != 3 || !summary.OtherTotal.IsZero() {
		t.Fatalf("unexpected summary: %+v", summary)
	}
}

func TestAggregatePaymentRecordsOtherCategory(t *testing.T) {
	records := append(models.DefaultPaymentRecords(), models.PaymentRecord{
		ID:       4,
		Date:     time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
		Amount:   models.MustMoney("10.01"),
		Category: "Refund",
		Status:   constants.PaymentRecordStatusPaid,
	})
	summary := AggregatePaymentRecords(records)
	if summary.OtherTotal.String() != "10.01" || summary.GrandTotal.String() != "2109.98" {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	partition := summary.ServiceFeeTotal.Add(summary.RigOrderTotal).Add(summary.OtherTotal)
	if !partition.Equal(summary.GrandTotal.Decimal) {
		t.Fatalf("named buckets must partition grand total")
	}
}

func TestAggregatePaymentRecordsEmpty(t *testing.T) {
	summary := AggregatePaymentRecords(nil)
	if !summary.GrandTotal.IsZero() || summary.Count != 0 {
		t.Fatalf("expected zero summary, got %+v", summary)
	}
}

func TestFilterPaymentRecordsServiceFee(t *testing.T) {
	records := models.DefaultPaymentRecords()
	got := FilterPaymentRecords(records, HistoryFilter{Type: constants.PaymentCategoryServiceFee, Status: constants.HistoryFilterAll})
	if !equalIDs(recordIDs(got), []uint{1, 3}) {
		t.Fatalf("unexpected filter result: %v", recordIDs(got))
	}
	again := FilterPaymentRecords(got, HistoryFilter{Type: constants.PaymentCategoryServiceFee, Status: constants.HistoryFilterAll})
	if !equalIDs(recordIDs(again), recordIDs(got)) {
		t.Fatalf("filter should be idempotent")
	}
}

func TestFilterPaymentRecordsCombined(t *testing.T) {
	records := models.DefaultPaymentRecords()
	got := FilterPaymentRecords(records, HistoryFilter{Status: constants.PaymentRecordStatusPending})
	if !equalIDs(recordIDs(got), []uint{2}) {
		t.Fatalf("unexpected pending filter: %v", recordIDs(got))
	}
	got = FilterPaymentRecords(records, HistoryFilter{Type: constants.PaymentCategoryRigOrder, Status: constants.PaymentRecordStatusPaid})
	if len(got) != 0 {
		t.Fatalf("expected empty result, got %v", recordIDs(got))
	}
	got = FilterPaymentRecords(records, HistoryFilter{})
	if len(got) != len(records) {
		t.Fatalf("empty filter should keep everything")
	}
}

func TestSortPaymentRecordsByDate(t *testing.T) {
	records := models.DefaultPaymentRecords()
	desc := SortPaymentRecords(records, SortConfig{Key: constants.HistorySortKeyDate, Direction: constants.SortDirectionDesc})
	if !equalIDs(recordIDs(desc), []uint{1, 2, 3}) {
		t.Fatalf("unexpected desc order: %v", recordIDs(desc))
	}
	asc := SortPaymentRecords(records, SortConfig{Key: constants.HistorySortKeyDate, Direction: constants.SortDirectionAsc})
	if !equalIDs(recordIDs(asc), []uint{3, 2, 1}) {
		t.Fatalf("unexpected asc order: %v", recordIDs(asc))
	}
}

func TestSortPaymentRecordsByAmountIsStable(t *testing.T) {
	records := models.DefaultPaymentRecords()
	asc := SortPaymentRecords(records, SortConfig{Key: constants.HistorySortKeyAmount, Direction: constants.SortDirectionAsc})
	if !equalIDs(recordIDs(asc), []uint{1, 3, 2}) {
		t.Fatalf("unexpected amount asc order: %v", recordIDs(asc))
	}
	desc := SortPaymentRecords(records, SortConfig{Key: constants.HistorySortKeyAmount, Direction: constants.SortDirectionDesc})
	if !equalIDs(recordIDs(desc), []uint{2, 1, 3}) {
		t.Fatalf("unexpected amount desc order: %v", recordIDs(desc))
	}
	if !equalIDs(recordIDs(records), []uint{1, 2, 3}) {
		t.Fatalf("sort must not mutate input: %v", recordIDs(records))
	}
}

func TestSortPaymentRecordsUnknownKeyKeepsOrder(t *testing.T) {
	records := models.DefaultPaymentRecords()
	got := SortPaymentRecords(records, SortConfig{Key: "status", Direction: constants.SortDirectionAsc})
	if !equalIDs(recordIDs(got), []uint{1, 2, 3}) {
		t.Fatalf("unknown key should keep order: %v", recordIDs(got))
	}
}

func TestToggleSortSequence(t *testing.T) {
	cfg := DefaultSortConfig()
	cfg = ToggleSort(cfg, constants.HistorySortKeyDate)
	if cfg.Key != constants.HistorySortKeyDate || cfg.Direction != constants.SortDirectionAsc {
		t.Fatalf("expected date/asc, got %+v", cfg)
	}
	cfg = ToggleSort(cfg, constants.HistorySortKeyAmount)
	if cfg.Key != constants.HistorySortKeyAmount || cfg.Direction != constants.SortDirectionDesc {
		t.Fatalf("expected amount/desc, got %+v", cfg)
	}
	cfg = ToggleSort(cfg, constants.HistorySortKeyAmount)
	if cfg.Direction != constants.SortDirectionAsc {
		t.Fatalf("expected amount/asc, got %+v", cfg)
	}
	cfg = ToggleSort(cfg, constants.HistorySortKeyAmount)
	if cfg.Direction != constants.SortDirectionDesc {
		t.Fatalf("expected amount/desc, got %+v", cfg)
	}
}
