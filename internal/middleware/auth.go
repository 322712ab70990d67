// Package middleware 提供 HTTP 中间件
package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/dumeirei/hotel-backoffice/internal/common/jwt"
	"github.com/dumeirei/hotel-backoffice/internal/common/response"
)

// 上下文键
const (
	ContextKeyStaffID = "staff_id"
	ContextKeyRole    = "role"
)

// StaffAuth 员工认证中间件，认证通过后写入操作员工 ID 与角色
func StaffAuth(jwtManager *jwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, reason := authenticate(jwtManager, c)
		if claims == nil {
			response.Unauthorized(c, reason)
			return
		}

		c.Set(ContextKeyStaffID, claims.StaffID)
		c.Set(ContextKeyRole, claims.Role)
		c.Next()
	}
}

// authenticate 解析令牌，失败时返回给前台的提示
func authenticate(jwtManager *jwt.Manager, c *gin.Context) (*jwt.Claims, string) {
	token := bearerToken(c.GetHeader("Authorization"))
	if token == "" {
		token, _ = c.Cookie("token")
	}
	if token == "" {
		return nil, "请先登录"
	}

	claims, err := jwtManager.ParseToken(token)
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return nil, "登录已过期，请重新登录"
	case err != nil, claims.StaffID <= 0:
		return nil, "无效的令牌"
	}
	return claims, ""
}

func bearerToken(header string) string {
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// GetStaffID 从上下文获取操作员工 ID
func GetStaffID(c *gin.Context) int64 {
	return c.GetInt64(ContextKeyStaffID)
}

// GetRole 从上下文获取角色
func GetRole(c *gin.Context) string {
	return c.GetString(ContextKeyRole)
}
