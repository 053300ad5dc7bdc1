package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/vinverse/gamerlink/internal/auth"
	"github.com/vinverse/gamerlink/pkg/response"
)

// ContextUserKey 认证后的用户 ID 存放键
const ContextUserKey = "user_id"

// Auth 校验 Bearer token，失败直接 401
func Auth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := bearerUser(c, secret)
		if !ok {
			response.Unauthorized(c, "invalid or missing token")
			c.Abort()
			return
		}
		c.Set(ContextUserKey, userID)
		c.Next()
	}
}

// OptionalAuth 匿名可访问的公开读接口：带合法 token 时注入身份，否则放行
func OptionalAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID, ok := bearerUser(c, secret); ok {
			c.Set(ContextUserKey, userID)
		}
		c.Next()
	}
}

// CurrentUser 取当前请求的用户 ID，空串表示匿名
func CurrentUser(c *gin.Context) string {
	v, ok := c.Get(ContextUserKey)
	if !ok {
		return ""
	}
	id, _ := v.(string)
	return id
}

func bearerUser(c *gin.Context, secret string) (string, bool) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", false
	}
	userID, err := auth.VerifyToken(secret, parts[1])
	if err != nil {
		return "", false
	}
	return userID, true
}
