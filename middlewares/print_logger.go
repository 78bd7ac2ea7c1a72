package middlewares

import (
	"github.com/gin-gonic/gin"
	"github.com/nalaku/printshop-app/utils"
)

func PrintLoggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		utils.InfoLogger.Printf("Rendering document for order ID: %s", c.Param("order_id"))

		c.Next()

		if c.Writer.Status() == 200 {
			utils.InfoLogger.Printf("Document rendered for order ID: %s", c.Param("order_id"))
		} else {
			utils.ErrorLogger.Printf("Failed to render document for order ID: %s", c.Param("order_id"))
		}
	}
}
