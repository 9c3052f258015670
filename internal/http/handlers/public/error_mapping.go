package public

import (
	"errors"

	handlershared "github.com/hashhost/billing/internal/http/handlers/shared"
	"github.com/hashhost/billing/internal/http/response"
	"github.com/hashhost/billing/internal/service"

	"github.com/gin-gonic/gin"
)

// mappedHandlerError 定义业务错误到接口错误响应的映射关系。
type mappedHandlerError struct {
	target error
	code   int
	msg    string
}

func respondError(c *gin.Context, code int, msg string, err error) {
	handlershared.RespondError(c, code, msg, err)
}

func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError, fallbackCode int, fallbackMsg string) {
	for _, rule := range rules {
		if errors.Is(err, rule.target) {
			respondError(c, rule.code, rule.msg, nil)
			return
		}
	}
	respondError(c, fallbackCode, fallbackMsg, err)
}

func concatMappedHandlerErrors(groups ...[]mappedHandlerError) []mappedHandlerError {
	total := 0
	for _, group := range groups {
		total += len(group)
	}
	result := make([]mappedHandlerError, 0, total)
	for _, group := range groups {
		result = append(result, group...)
	}
	return result
}

var billingSessionErrorRules = []mappedHandlerError{
	{target: service.ErrBillingSessionNotFound, code: response.CodeNotFound, msg: "billing session not found"},
}

var savedCardErrorRules = concatMappedHandlerErrors(billingSessionErrorRules, []mappedHandlerError{
	{target: service.ErrCardInputRequired, code: response.CodeBadRequest, msg: "card number, expiry and cvc are required"},
})

var selectionErrorRules = concatMappedHandlerErrors(billingSessionErrorRules, []mappedHandlerError{
	{target: service.ErrPaymentMethodNotFound, code: response.CodeNotFound, msg: "payment method not found"},
	{target: service.ErrPaymentMethodCategoryMismatch, code: response.CodeBadRequest, msg: "payment method category mismatch"},
})

var historyErrorRules = []mappedHandlerError{
	{target: service.ErrPaymentRecordNotFound, code: response.CodeNotFound, msg: "payment record not found"},
	{target: service.ErrHistorySortInvalid, code: response.CodeBadRequest, msg: "history sort invalid"},
	{target: service.ErrHistoryFilterInvalid, code: response.CodeBadRequest, msg: "history filter invalid"},
}
