package middleware

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// CORS allows the configured frontend origins. A "*" entry opens the API to every
// origin without credentials; no origins disables the middleware.
func CORS(origins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Authorization", "Content-Type", requestIDHeader},
		ExposeHeaders: []string{requestIDHeader},
		MaxAge:        12 * time.Hour,
	}

	for _, o := range origins {
		if o == "*" {
			cfg.AllowAllOrigins = true
			break
		}
		cfg.AllowOrigins = append(cfg.AllowOrigins, o)
	}

	switch {
	case cfg.AllowAllOrigins:
		cfg.AllowOrigins = nil
	case len(cfg.AllowOrigins) == 0:
		return func(c *gin.Context) { c.Next() }
	default:
		cfg.AllowCredentials = true
	}
	return cors.New(cfg)
}
