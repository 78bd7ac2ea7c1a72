package middlewares

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nalaku/printshop-app/utils"
)

func RoleCheck() gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.Param("role")
		userRole, exists := c.Get("role")

		if !exists {
			utils.RespondError(c, http.StatusUnauthorized, fmt.Errorf("unauthorized"))
			c.Abort()
			return
		}

		// Validasi role
		switch role {
		case "admin":
			if userRole != "admin" {
				utils.RespondError(c, http.StatusForbidden, fmt.Errorf("admin access required"))
				c.Abort()
				return
			}
		case "kasir":
			if userRole != "kasir" && userRole != "admin" {
				utils.RespondError(c, http.StatusForbidden, fmt.Errorf("kasir access required"))
				c.Abort()
				return
			}
		case "produksi":
			if userRole != "produksi" && userRole != "admin" {
				utils.RespondError(c, http.StatusForbidden, fmt.Errorf("produksi access required"))
				c.Abort()
				return
			}
		}

		c.Next()
	}
}
