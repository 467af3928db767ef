// internal/middleware/cors.go
package middleware

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// CORS allows any origin and the storefront client's request headers,
// including the guest cart header, and answers preflight OPTIONS requests.
func CORS() gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders: []string{
			"Authorization", "X-Client-Info", "Apikey", "Content-Type", "X-Guest-Cart-Id",
		},
		ExposeHeaders: []string{
			"X-Guest-Cart-Id", "X-Total-Count", "X-Page", "X-Per-Page", "X-Total-Pages",
		},
		MaxAge: 12 * time.Hour,
	})
}
