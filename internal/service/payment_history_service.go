package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/hashhost/billing/internal/cache"
	"github.com/hashhost/billing/internal/constants"
	"github.com/hashhost/billing/internal/logger"
	"github.com/hashhost/billing/internal/models"
	"github.com/hashhost/billing/internal/repository"
)

const defaultHistoryCacheTTL = 60 * time.Second

// HistoryQuery 支付历史查询参数
type HistoryQuery struct {
	Type      string
	Status    string
	SortKey   string
	Direction string
}

// HistoryView 支付历史列表视图
type HistoryView struct {
	Records []models.PaymentRecord `json:"records"`
	Summary HistorySummary         `json:"summary"`
	Filter  HistoryFilter          `json:"filter"`
	Sort    SortConfig             `json:"sort"`
	Total   int                    `json:"total"`
}

// PaymentRecordDetail 支付记录详情
type PaymentRecordDetail struct {
	models.PaymentRecord
	Payable bool `json:"payable"`
}

// PaymentHistoryService 支付历史服务
type PaymentHistoryService struct {
	repo     repository.PaymentRecordRepository
	cacheTTL time.Duration
}

// NewPaymentHistoryService 创建支付历史服务
func NewPaymentHistoryService(repo repository.PaymentRecordRepository, cacheTTL time.Duration) *PaymentHistoryService {
	if cacheTTL <= 0 {
		cacheTTL = defaultHistoryCacheTTL
	}
	return &PaymentHistoryService{repo: repo, cacheTTL: cacheTTL}
}

// View 筛选并排序历史列表，汇总始终基于全部记录
func (s *PaymentHistoryService) View(ctx context.Context, query HistoryQuery) (*HistoryView, error) {
	filter := HistoryFilter{Type: query.Type, Status: query.Status}.Normalize()
	if !isValidStatusFilter(filter.Status) {
		return nil, fmt.Errorf("%w: status %q", ErrHistoryFilterInvalid, filter.Status)
	}
	sortCfg, err := resolveSortConfig(query.SortKey, query.Direction)
	if err != nil {
		return nil, err
	}

	records, err := s.repo.ListAll()
	if err != nil {
		return nil, err
	}
	summary, err := s.summaryOf(ctx, records)
	if err != nil {
		return nil, err
	}
	list := SortPaymentRecords(FilterPaymentRecords(records, filter), sortCfg)
	return &HistoryView{
		Records: list,
		Summary: summary,
		Filter:  filter,
		Sort:    sortCfg,
		Total:   len(list),
	}, nil
}

// Summary 返回全部记录的汇总
func (s *PaymentHistoryService) Summary(ctx context.Context) (HistorySummary, error) {
	var cached HistorySummary
	hit, cacheErr := cache.GetJSON(ctx, constants.CacheKeyHistorySummary, &cached)
	if cacheErr == nil && hit {
		return cached, nil
	}
	records, err := s.repo.ListAll()
	if err != nil {
		return HistorySummary{}, err
	}
	return s.storeSummary(ctx, AggregatePaymentRecords(records)), nil
}

// Get 获取单条记录详情
func (s *PaymentHistoryService) Get(ctx context.Context, id uint) (*PaymentRecordDetail, error) {
	record, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, ErrPaymentRecordNotFound
	}
	return &PaymentRecordDetail{
		PaymentRecord: *record,
		Payable:       record.Status == constants.PaymentRecordStatusPending,
	}, nil
}

// NextSort 根据当前排序计算点击列头后的排序
func (s *PaymentHistoryService) NextSort(current SortConfig, key string) (SortConfig, error) {
	key = strings.TrimSpace(key)
	if !isValidSortKey(key) {
		return SortConfig{}, fmt.Errorf("%w: key %q", ErrHistorySortInvalid, key)
	}
	if current.Key == "" && current.Direction == "" {
		current = DefaultSortConfig()
	}
	if !isValidSortKey(current.Key) || !isValidSortDirection(current.Direction) {
		return SortConfig{}, fmt.Errorf("%w: current %s/%s", ErrHistorySortInvalid, current.Key, current.Direction)
	}
	return ToggleSort(current, key), nil
}

// InvalidateSummary 清除汇总缓存
func (s *PaymentHistoryService) InvalidateSummary(ctx context.Context) {
	if err := cache.Del(ctx, constants.CacheKeyHistorySummary); err != nil {
		logger.Warnw("billing_history_summary_invalidate_failed", "error", err)
	}
}

func (s *PaymentHistoryService) summaryOf(ctx context.Context, records []models.PaymentRecord) (HistorySummary, error) {
	var cached HistorySummary
	hit, cacheErr := cache.GetJSON(ctx, constants.CacheKeyHistorySummary, &cached)
	if cacheErr == nil && hit && cached.Count == len(records) {
		return cached, nil
	}
	return s.storeSummary(ctx, AggregatePaymentRecords(records)), nil
}

func (s *PaymentHistoryService) storeSummary(ctx context.Context, summary HistorySummary) HistorySummary {
	if err := cache.SetJSON(ctx, constants.CacheKeyHistorySummary, summary, s.cacheTTL); err != nil {
		logger.Warnw("billing_history_summary_cache_failed", "error", err)
	}
	return summary
}

func resolveSortConfig(key, direction string) (SortConfig, error) {
	cfg := DefaultSortConfig()
	if trimmed := strings.TrimSpace(key); trimmed != "" {
		cfg.Key = trimmed
	}
	if trimmed := strings.ToLower(strings.TrimSpace(direction)); trimmed != "" {
		cfg.Direction = trimmed
	}
	if !isValidSortKey(cfg.Key) || !isValidSortDirection(cfg.Direction) {
		return SortConfig{}, fmt.Errorf("%w: %s/%s", ErrHistorySortInvalid, cfg.Key, cfg.Direction)
	}
	return cfg, nil
}
