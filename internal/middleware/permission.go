package middleware

import (
	"slices"

	"github.com/gin-gonic/gin"

	"github.com/dumeirei/hotel-backoffice/internal/common/jwt"
	"github.com/dumeirei/hotel-backoffice/internal/common/response"
)

// RequireRoles 要求当前员工具备任一角色，需在 StaffAuth 之后使用
func RequireRoles(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := GetRole(c)
		switch {
		case role == "":
			response.Unauthorized(c, "请先登录")
		case !slices.Contains(roles, role):
			response.Forbidden(c, "权限不足，需要值班经理操作")
		default:
			c.Next()
		}
	}
}

// RequireManager 删除等不可逆操作仅限值班经理
func RequireManager() gin.HandlerFunc {
	return RequireRoles(jwt.RoleManager)
}
