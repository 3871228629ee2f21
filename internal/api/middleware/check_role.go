package middleware

import (
	"CommandCenter/internal/pkg/response"
	"strings"

	"github.com/gin-gonic/gin"
)

// CheckRoles 检查当前用户是否拥有至少一个指定的角色
func CheckRoles(requiredRoles ...string) gin.HandlerFunc {
	message := "Forbidden - " + strings.Join(requiredRoles, " or ") + " role required"
	if len(requiredRoles) == 1 {
		message = "Forbidden - " + titleCase(requiredRoles[0]) + " role required"
	}

	return func(c *gin.Context) {
		roles := c.GetStringSlice("roles")

		hasPermission := false
		for _, required := range requiredRoles {
			for _, userRole := range roles {
				if required == userRole {
					hasPermission = true
					break
				}
			}
			if hasPermission {
				break
			}
		}

		if !hasPermission {
			response.Fail(c, response.Forbidden, message)
			return
		}

		c.Next()
	}
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	lower := strings.ToLower(s)
	return strings.ToUpper(lower[:1]) + lower[1:]
}
