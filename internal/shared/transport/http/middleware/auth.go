package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"MedievalKingdoms/internal/shared/security"
	"MedievalKingdoms/internal/shared/transport"
)

// UidKey 鉴权通过后写入 gin context 的玩家 id 键。
const UidKey = "uid"

// Auth 解析 Authorization: Bearer <token>，成功后把 uid 写入 gin context。
func Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader("Authorization")
		token = strings.TrimPrefix(token, "Bearer ")
		if token == "" {
			transport.SetErrorReason(c.Request.Context(), "missing token")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"code": transport.Unauthorized,
				"msg":  "未登录或登录已过期",
			})
			return
		}

		_, claims, err := security.ParseToken(token)
		if err != nil {
			transport.SetErrorReason(c.Request.Context(), "invalid token")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"code": transport.Unauthorized,
				"msg":  "未登录或登录已过期",
			})
			return
		}

		c.Set(UidKey, claims.Uid)
		c.Next()
	}
}

// Uid 从 gin context 读取鉴权中间件写入的玩家 id。
func Uid(c *gin.Context) int64 {
	v, _ := c.Get(UidKey)
	uid, _ := v.(int64)
	return uid
}
