package middleware

import (
	"errors"

	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/vinverse/gamerlink/pkg/logger"
	"github.com/vinverse/gamerlink/pkg/response"
)

var errInternal = errors.New("internal server error")

// Recovery panic 上报 sentry 并返回 500，不让单个请求拖垮进程
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				sentry.CurrentHub().Recover(r)
				logger.Error("panic recovered",
					zap.Any("panic", r),
					zap.String("path", c.Request.URL.Path),
				)
				response.InternalError(c, errInternal)
				c.Abort()
			}
		}()
		c.Next()
	}
}
