package middleware

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// CORS returns a middleware that handles Cross-Origin Resource Sharing.
// The catalog API is public and read-only, so all origins may read it.
func CORS() gin.HandlerFunc {
	cfg := cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "HEAD", "OPTIONS"},
		AllowHeaders: []string{
			"Accept", "Accept-Language", "Accept-Encoding",
			"Content-Type", "Cache-Control", "X-Request-ID",
		},
		ExposeHeaders: []string{"X-Request-ID", "Cache-Control"},
		MaxAge:        12 * time.Hour,
	}
	return cors.New(cfg)
}
