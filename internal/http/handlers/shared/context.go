package shared

import (
	"strconv"
	"strings"

	"github.com/hashhost/billing/internal/constants"
	"github.com/hashhost/billing/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetBillingSessionID 读取中间件写入的会话 ID。
func GetBillingSessionID(c *gin.Context) (string, bool) {
	value, exists := c.Get(constants.BillingSessionCtxKey)
	if !exists {
		RespondError(c, response.CodeBadRequest, "billing session required", nil)
		return "", false
	}
	id, ok := value.(string)
	if !ok || strings.TrimSpace(id) == "" {
		RespondError(c, response.CodeInternal, "billing session type invalid", nil)
		return "", false
	}
	return id, true
}

// ParseUintParam 解析路径中的数字 ID。
func ParseUintParam(c *gin.Context, name string) (uint, bool) {
	raw := strings.TrimSpace(c.Param(name))
	value, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || value == 0 {
		RespondError(c, response.CodeBadRequest, name+" invalid", nil)
		return 0, false
	}
	return uint(value), true
}
