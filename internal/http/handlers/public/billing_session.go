package public

import (
	"github.com/hashhost/billing/internal/http/response"

	"github.com/gin-gonic/gin"
)

// CreateBillingSession 创建账单页会话
func (h *Handler) CreateBillingSession(c *gin.Context) {
	session, err := h.BillingSessionService.Create(c.Request.Context())
	if err != nil {
		respondError(c, response.CodeInternal, "billing session create failed", err)
		return
	}
	overview, err := h.BillingSessionService.Overview(c.Request.Context(), session.ID)
	if err != nil {
		respondWithMappedError(c, err, billingSessionErrorRules, response.CodeInternal, "billing session fetch failed")
		return
	}
	response.Success(c, overview)
}

// GetBillingOverview 获取账单页概览
func (h *Handler) GetBillingOverview(c *gin.Context) {
	sessionID, ok := getSessionID(c)
	if !ok {
		return
	}
	overview, err := h.BillingSessionService.Overview(c.Request.Context(), sessionID)
	if err != nil {
		respondWithMappedError(c, err, billingSessionErrorRules, response.CodeInternal, "billing session fetch failed")
		return
	}
	response.Success(c, overview)
}
