package middleware

import (
	"slices"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// CORS allows cross-origin calls from the configured origins. "*" allows any
// origin; an empty list disables cross-origin access entirely.
func CORS(allowedOrigins ...string) gin.HandlerFunc {
	origins := make([]string, 0, len(allowedOrigins))
	for _, o := range allowedOrigins {
		if o = strings.TrimRight(strings.TrimSpace(o), "/"); o != "" {
			origins = append(origins, o)
		}
	}

	cfg := cors.Config{
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept"},
		MaxAge:       10 * time.Minute,
	}
	switch {
	case slices.Contains(origins, "*"):
		cfg.AllowAllOrigins = true
	case len(origins) > 0:
		cfg.AllowOrigins = origins
	default:
		return func(c *gin.Context) { c.Next() }
	}
	return cors.New(cfg)
}
