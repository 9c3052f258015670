package public

import (
	handlershared "github.com/hashhost/billing/internal/http/handlers/shared"

	"github.com/gin-gonic/gin"
)

func getSessionID(c *gin.Context) (string, bool) {
	return handlershared.GetBillingSessionID(c)
}

func getCardID(c *gin.Context) (uint, bool) {
	return handlershared.ParseUintParam(c, "id")
}

func getRecordID(c *gin.Context) (uint, bool) {
	return handlershared.ParseUintParam(c, "id")
}
