package public

import (
	"github.com/hashhost/billing/internal/http/response"
	"github.com/hashhost/billing/internal/service"

	"github.com/gin-gonic/gin"
)

// ToggleSortRequest 点击列头请求
type ToggleSortRequest struct {
	Key     string             `json:"key" binding:"required"`
	Current service.SortConfig `json:"current"`
}

// ListPaymentHistory 获取支付历史
func (h *Handler) ListPaymentHistory(c *gin.Context) {
	view, err := h.PaymentHistoryService.View(c.Request.Context(), service.HistoryQuery{
		Type:      c.Query("type"),
		Status:    c.Query("status"),
		SortKey:   c.Query("sort"),
		Direction: c.Query("direction"),
	})
	if err != nil {
		respondWithMappedError(c, err, historyErrorRules, response.CodeInternal, "history fetch failed")
		return
	}
	response.Success(c, view)
}

// GetPaymentHistorySummary 获取支付汇总
func (h *Handler) GetPaymentHistorySummary(c *gin.Context) {
	summary, err := h.PaymentHistoryService.Summary(c.Request.Context())
	if err != nil {
		respondError(c, response.CodeInternal, "history summary failed", err)
		return
	}
	response.Success(c, summary)
}

// GetPaymentRecord 获取单条支付记录
func (h *Handler) GetPaymentRecord(c *gin.Context) {
	id, ok := getRecordID(c)
	if !ok {
		return
	}
	detail, err := h.PaymentHistoryService.Get(c.Request.Context(), id)
	if err != nil {
		respondWithMappedError(c, err, historyErrorRules, response.CodeInternal, "history fetch failed")
		return
	}
	response.Success(c, detail)
}

// ToggleHistorySort 计算下一个排序状态
func (h *Handler) ToggleHistorySort(c *gin.Context) {
	var req ToggleSortRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "sort key is required", nil)
		return
	}
	next, err := h.PaymentHistoryService.NextSort(req.Current, req.Key)
	if err != nil {
		respondWithMappedError(c, err, historyErrorRules, response.CodeInternal, "history sort failed")
		return
	}
	response.Success(c, next)
}
