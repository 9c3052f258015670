package public

import (
	"github.com/hashhost/billing/internal/http/response"

	"github.com/gin-gonic/gin"
)

// ListPaymentMethods 获取支付方式目录
func (h *Handler) ListPaymentMethods(c *gin.Context) {
	response.Success(c, gin.H{
		"methods":  h.PaymentMethodCatalog.List(),
		"groups":   h.PaymentMethodCatalog.Groups(),
		"currency": h.Config.Billing.Currency,
	})
}
