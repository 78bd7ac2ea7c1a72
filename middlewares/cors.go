package middlewares

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
)

const defaultOrigin = "http://127.0.0.1:5500"

var allowedHeaders = "Content-Type, Content-Length, Accept-Encoding, " +
	"Authorization, Accept, Origin, Cache-Control, X-Requested-With, " +
	"Sec-WebSocket-Protocol, Sec-WebSocket-Version, Sec-WebSocket-Key, Upgrade"

// CORSMiddlewares mengizinkan SPA dashboard mengakses API dari origin
// lain. Origin diambil dari CORS_ORIGIN agar deploy tidak terikat ke
// alamat dev server.
func CORSMiddlewares() gin.HandlerFunc {
	origin := os.Getenv("CORS_ORIGIN")
	if origin == "" {
		origin = defaultOrigin
	}

	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Set("Access-Control-Allow-Origin", origin)
		h.Set("Access-Control-Allow-Credentials", "true")
		h.Set("Access-Control-Allow-Headers", allowedHeaders)
		h.Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")

		if c.Request.Method == http.MethodOptions {
			// Preflight upgrade websocket perlu header Connection/Upgrade
			if c.GetHeader("Upgrade") == "websocket" {
				h.Set("Connection", "Upgrade")
				h.Set("Upgrade", "websocket")
			}
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
