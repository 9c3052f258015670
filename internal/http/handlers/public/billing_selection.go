package public

import (
	"errors"

	"github.com/hashhost/billing/internal/http/response"
	"github.com/hashhost/billing/internal/service"

	"github.com/gin-gonic/gin"
)

// SelectMethodRequest 选择支付方式请求
type SelectMethodRequest struct {
	MethodID string `json:"method_id" binding:"required"`
}

// GetSelection 获取当前支付方式
func (h *Handler) GetSelection(c *gin.Context) {
	sessionID, ok := getSessionID(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	state, err := h.MethodSelectionService.Current(ctx, sessionID)
	if err != nil {
		respondWithMappedError(c, err, selectionErrorRules, response.CodeInternal, "selection fetch failed")
		return
	}
	defaultCard, err := h.SavedCardService.Default(ctx, sessionID)
	if err != nil {
		respondError(c, response.CodeInternal, "selection fetch failed", err)
		return
	}
	response.Success(c, gin.H{
		"selection":   state,
		"description": h.MethodSelectionService.Describe(state, defaultCard),
	})
}

// UpdateSelection 按支付方式标识切换
func (h *Handler) UpdateSelection(c *gin.Context) {
	sessionID, ok := getSessionID(c)
	if !ok {
		return
	}
	var req SelectMethodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "method_id is required", nil)
		return
	}
	result, err := h.MethodSelectionService.Select(c.Request.Context(), sessionID, req.MethodID)
	h.respondSelection(c, result, err)
}

// SelectRecurring 切换到自动扣款
func (h *Handler) SelectRecurring(c *gin.Context) {
	sessionID, ok := getSessionID(c)
	if !ok {
		return
	}
	result, err := h.MethodSelectionService.SelectRecurring(c.Request.Context(), sessionID)
	h.respondSelection(c, result, err)
}

// SelectManual 切换到手动支付
func (h *Handler) SelectManual(c *gin.Context) {
	sessionID, ok := getSessionID(c)
	if !ok {
		return
	}
	var req SelectMethodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "method_id is required", nil)
		return
	}
	result, err := h.MethodSelectionService.SelectManual(c.Request.Context(), sessionID, req.MethodID)
	h.respondSelection(c, result, err)
}

func (h *Handler) respondSelection(c *gin.Context, result *service.SelectionResult, err error) {
	if errors.Is(err, service.ErrDefaultCardRequired) && result != nil {
		response.Conflict(c, result.Notification.Message, gin.H{
			"selection":    result.State,
			"notification": result.Notification,
		})
		return
	}
	if err != nil {
		respondWithMappedError(c, err, selectionErrorRules, response.CodeInternal, "selection update failed")
		return
	}
	response.SuccessWithMsg(c, result.Notification.Message, gin.H{
		"selection":    result.State,
		"notification": result.Notification,
	})
}
