package shared

import (
	"github.com/pazar-next/internal/http/response"
	"github.com/pazar-next/internal/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequestLog 提供携带 request_id 的日志实例。
func RequestLog(c *gin.Context) *zap.SugaredLogger {
	if c == nil {
		return logger.S()
	}
	if requestID, ok := c.Get("request_id"); ok {
		if id, ok := requestID.(string); ok && id != "" {
			return logger.SW("request_id", id)
		}
	}
	return logger.S()
}

// RespondError 返回错误响应，并在有原始错误时记录日志。
func RespondError(c *gin.Context, code int, msg string, err error) {
	appErr := response.WrapError(code, msg, err)
	if err != nil {
		RequestLog(c).Errorw("handler_error",
			"code", appErr.Code,
			"message", appErr.Message,
			"error", err,
		)
	}
	switch appErr.Code {
	case response.CodeNotFound:
		response.NotFound(c)
	case response.CodeUnauthorized:
		response.Unauthorized(c, appErr.Message)
	case response.CodeForbidden:
		response.Forbidden(c, appErr.Message)
	case response.CodeTooManyRequests:
		response.TooManyRequests(c, appErr.Message)
	case response.CodeInternal:
		response.Internal(c, appErr.Message)
	default:
		response.BadRequest(c, appErr.Message)
	}
}
