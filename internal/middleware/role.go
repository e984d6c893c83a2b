package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"marketplace-backend/internal/domain/account"
	"marketplace-backend/pkg/utils"
)

func RoleMiddleware(allowedRoles ...account.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get(ContextRole)
		if !exists {
			utils.ErrorResponse(c, http.StatusForbidden, "Role not found in context")
			c.Abort()
			return
		}

		accountRole := account.Role(role.(string))

		for _, allowedRole := range allowedRoles {
			if accountRole == allowedRole {
				c.Next()
				return
			}
		}

		utils.ErrorResponse(c, http.StatusForbidden, "Insufficient permissions")
		c.Abort()
	}
}

func AdminOnly() gin.HandlerFunc {
	return RoleMiddleware(account.RoleAdmin, account.RoleSuperAdmin)
}

func ProductManagement() gin.HandlerFunc {
	return RoleMiddleware(account.RoleAdmin, account.RoleSuperAdmin, account.RoleProductManager)
}

func VendorOrManagement() gin.HandlerFunc {
	return RoleMiddleware(account.RoleVendor, account.RoleAdmin, account.RoleSuperAdmin, account.RoleProductManager)
}
