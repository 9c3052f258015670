package public

import (
	"github.com/hashhost/billing/internal/http/response"
	"github.com/hashhost/billing/internal/service"

	"github.com/gin-gonic/gin"
)

// AddCardRequest 添加卡片请求
type AddCardRequest struct {
	Number string `json:"number" binding:"required"`
	Expiry string `json:"expiry" binding:"required"`
	CVC    string `json:"cvc" binding:"required"`
}

// ListCards 获取已保存卡片
func (h *Handler) ListCards(c *gin.Context) {
	sessionID, ok := getSessionID(c)
	if !ok {
		return
	}
	cards, err := h.SavedCardService.List(c.Request.Context(), sessionID)
	if err != nil {
		respondError(c, response.CodeInternal, "card list failed", err)
		return
	}
	response.Success(c, cards)
}

// AddCard 保存新卡
func (h *Handler) AddCard(c *gin.Context) {
	sessionID, ok := getSessionID(c)
	if !ok {
		return
	}
	var req AddCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "card number, expiry and cvc are required", nil)
		return
	}
	card, notification, err := h.SavedCardService.Add(c.Request.Context(), sessionID, service.AddCardInput{
		Number: req.Number,
		Expiry: req.Expiry,
		CVC:    req.CVC,
	})
	if err != nil {
		respondWithMappedError(c, err, savedCardErrorRules, response.CodeInternal, "card add failed")
		return
	}
	response.SuccessWithMsg(c, notification.Message, gin.H{
		"card":         card,
		"notification": notification,
	})
}

// RemoveCard 删除卡片
func (h *Handler) RemoveCard(c *gin.Context) {
	sessionID, ok := getSessionID(c)
	if !ok {
		return
	}
	cardID, ok := getCardID(c)
	if !ok {
		return
	}
	notification, err := h.SavedCardService.Remove(c.Request.Context(), sessionID, cardID)
	if err != nil {
		respondWithMappedError(c, err, savedCardErrorRules, response.CodeInternal, "card remove failed")
		return
	}
	response.SuccessWithMsg(c, notification.Message, gin.H{
		"notification": notification,
	})
}

// SetDefaultCard 设置默认卡
func (h *Handler) SetDefaultCard(c *gin.Context) {
	sessionID, ok := getSessionID(c)
	if !ok {
		return
	}
	cardID, ok := getCardID(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	card, notification, err := h.SavedCardService.SetDefault(ctx, sessionID, cardID)
	if err != nil {
		respondWithMappedError(c, err, savedCardErrorRules, response.CodeInternal, "card set default failed")
		return
	}
	state, err := h.MethodSelectionService.Current(ctx, sessionID)
	if err != nil {
		respondWithMappedError(c, err, selectionErrorRules, response.CodeInternal, "selection fetch failed")
		return
	}
	response.SuccessWithMsg(c, notification.Message, gin.H{
		"card":         card,
		"selection":    state,
		"notification": notification,
	})
}
