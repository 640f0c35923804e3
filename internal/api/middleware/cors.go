package middleware

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// CORS returns a CORS middleware for the configured front-end origins.
// An empty list or "*" allows any origin.
func CORS(allowOrigins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", "X-API-Key"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        24 * time.Hour,
	}

	for _, o := range allowOrigins {
		if o == "*" {
			cfg.AllowAllOrigins = true
		}
	}
	if len(allowOrigins) == 0 {
		cfg.AllowAllOrigins = true
	}
	if !cfg.AllowAllOrigins {
		cfg.AllowOrigins = allowOrigins
	}

	return cors.New(cfg)
}
