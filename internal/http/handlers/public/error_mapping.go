package public

import (
	"errors"

	"github.com/pazar-next/internal/http/response"
	"github.com/pazar-next/internal/service"

	"github.com/gin-gonic/gin"
)

// mappedHandlerError 定义业务错误到接口错误响应的映射关系。
// useErrMsg 为 true 时直接透出业务错误文本（用于携带上下文的包装错误）。
type mappedHandlerError struct {
	target    error
	code      int
	msg       string
	useErrMsg bool
}

func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError, fallbackCode int, fallbackMsg string) {
	for _, rule := range rules {
		if errors.Is(err, rule.target) {
			msg := rule.msg
			if rule.useErrMsg && err != nil {
				msg = err.Error()
			}
			respondError(c, rule.code, msg, nil)
			return
		}
	}
	respondError(c, fallbackCode, fallbackMsg, err)
}

var cartErrorRules = []mappedHandlerError{
	{target: service.ErrInvalidQuantity, code: response.CodeBadRequest, msg: "quantity must be positive"},
	{target: service.ErrProductNotAvailable, code: response.CodeBadRequest, msg: "product not available"},
	{target: service.ErrInsufficientStock, code: response.CodeBadRequest, msg: "insufficient stock"},
}

var orderCreateErrorRules = []mappedHandlerError{
	{target: service.ErrCartEmpty, code: response.CodeBadRequest, msg: "cart is empty"},
	{target: service.ErrShippingRequired, code: response.CodeBadRequest, msg: "shipping address is required"},
	{target: service.ErrPaymentMethodInvalid, code: response.CodeBadRequest, msg: "invalid payment method"},
	{target: service.ErrProductNotAvailable, code: response.CodeBadRequest, msg: "product not available"},
	{target: service.ErrInsufficientStock, code: response.CodeBadRequest, msg: "insufficient stock", useErrMsg: true},
}

var productWriteErrorRules = []mappedHandlerError{
	{target: service.ErrShopRequired, code: response.CodeBadRequest, msg: "seller shop required"},
	{target: service.ErrCategoryInvalid, code: response.CodeBadRequest, msg: "invalid category"},
	{target: service.ErrInvalidPrice, code: response.CodeBadRequest, msg: "invalid price"},
	{target: service.ErrDiscountExceedsPrice, code: response.CodeBadRequest, msg: "discount price cannot exceed price"},
	{target: service.ErrInvalidStock, code: response.CodeBadRequest, msg: "invalid stock"},
	{target: service.ErrProductNotAvailable, code: response.CodeBadRequest, msg: "invalid product data"},
	{target: service.ErrNotProductOwner, code: response.CodeForbidden, msg: "product belongs to another shop"},
}

var reviewCreateErrorRules = []mappedHandlerError{
	{target: service.ErrInvalidRating, code: response.CodeBadRequest, msg: "rating must be between 1 and 5"},
	{target: service.ErrProductNotAvailable, code: response.CodeBadRequest, msg: "product not available"},
	{target: service.ErrReviewExists, code: response.CodeBadRequest, msg: "product already reviewed"},
}
