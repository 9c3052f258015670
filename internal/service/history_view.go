package service

import (
	"sort"
	"strings"

	"github.com/hashhost/billing/internal/constants"
	"github.com/hashhost/billing/internal/models"
)

// HistoryFilter 支付历史筛选条件，空值等同于 all
type HistoryFilter struct {
	Type   string `json:"type"`
	Status string `json:"status"`
}

// SortConfig 排序配置
type SortConfig struct {
	Key       string `json:"key"`
	Direction string `json:"direction"`
}

// DefaultSortConfig 默认按日期倒序
func DefaultSortConfig() SortConfig {
	return SortConfig{Key: constants.HistorySortKeyDate, Direction: constants.SortDirectionDesc}
}

// HistorySummary 支付历史汇总
type HistorySummary struct {
	ServiceFeeTotal models.Money `json:"service_fee_total"`
	RigOrderTotal   models.Money `json:"rig_order_total"`
	OtherTotal      models.Money `json:"other_total"`
	GrandTotal      models.Money `json:"grand_total"`
	Count           int          `json:"count"`
}

// Normalize 将空值补齐为 all
func (f HistoryFilter) Normalize() HistoryFilter {
	out := HistoryFilter{Type: strings.TrimSpace(f.Type), Status: strings.TrimSpace(f.Status)}
	if out.Type == "" {
		out.Type = constants.HistoryFilterAll
	}
	if out.Status == "" {
		out.Status = constants.HistoryFilterAll
	}
	return out
}

// FilterPaymentRecords 按分类和状态筛选，保持原有顺序
func FilterPaymentRecords(records []models.PaymentRecord, filter HistoryFilter) []models.PaymentRecord {
	f := filter.Normalize()
	out := make([]models.PaymentRecord, 0, len(records))
	for _, record := range records {
		if f.Type != constants.HistoryFilterAll && record.Category != f.Type {
			continue
		}
		if f.Status != constants.HistoryFilterAll && record.Status != f.Status {
			continue
		}
		out = append(out, record)
	}
	return out
}

// SortPaymentRecords 稳定排序，返回新切片
func SortPaymentRecords(records []models.PaymentRecord, cfg SortConfig) []models.PaymentRecord {
	out := make([]models.PaymentRecord, len(records))
	copy(out, records)

	var cmp func(a, b models.PaymentRecord) int
	switch cfg.Key {
	case constants.HistorySortKeyDate:
		cmp = func(a, b models.PaymentRecord) int { return a.Date.Compare(b.Date) }
	case constants.HistorySortKeyAmount:
		cmp = func(a, b models.PaymentRecord) int { return a.Amount.Decimal.Cmp(b.Amount.Decimal) }
	default:
		return out
	}
	desc := cfg.Direction == constants.SortDirectionDesc
	sort.SliceStable(out, func(i, j int) bool {
		if desc {
			return cmp(out[i], out[j]) > 0
		}
		return cmp(out[i], out[j]) < 0
	})
	return out
}

// ToggleSort 同一列切换方向，新列从倒序开始
func ToggleSort(current SortConfig, key string) SortConfig {
	if current.Key == key && current.Direction == constants.SortDirectionDesc {
		return SortConfig{Key: key, Direction: constants.SortDirectionAsc}
	}
	return SortConfig{Key: key, Direction: constants.SortDirectionDesc}
}

// AggregatePaymentRecords 汇总各分类金额
func AggregatePaymentRecords(records []models.PaymentRecord) HistorySummary {
	summary := HistorySummary{
		ServiceFeeTotal: models.ZeroMoney(),
		RigOrderTotal:   models.ZeroMoney(),
		OtherTotal:      models.ZeroMoney(),
		GrandTotal:      models.ZeroMoney(),
		Count:           len(records),
	}
	for _, record := range records {
		switch record.Category {
		case constants.PaymentCategoryServiceFee:
			summary.ServiceFeeTotal = summary.ServiceFeeTotal.Add(record.Amount)
		case constants.PaymentCategoryRigOrder:
			summary.RigOrderTotal = summary.RigOrderTotal.Add(record.Amount)
		default:
			summary.OtherTotal = summary.OtherTotal.Add(record.Amount)
		}
		summary.GrandTotal = summary.GrandTotal.Add(record.Amount)
	}
	return summary
}

func isValidSortKey(key string) bool {
	return key == constants.HistorySortKeyDate || key == constants.HistorySortKeyAmount
}

func isValidSortDirection(direction string) bool {
	return direction == constants.SortDirectionAsc || direction == constants.SortDirectionDesc
}

func isValidStatusFilter(status string) bool {
	switch status {
	case constants.HistoryFilterAll,
		constants.PaymentRecordStatusPaid,
		constants.PaymentRecordStatusPending,
		constants.PaymentRecordStatusFailed:
		return true
	}
	return false
}
