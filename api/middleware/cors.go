package middleware

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/OldStager01/gpa-tracker/pkg/config"
)

func DefaultCORSConfig() config.CORSConfig {
	return config.CORSConfig{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization", TraceIDHeader},
		ExposedHeaders: []string{TraceIDHeader},
	}
}

// CORS builds the gin-contrib/cors handler. A wildcard origin cannot be
// combined with credentials, so credentials are only honoured for explicit
// origin lists.
func CORS(cfg config.CORSConfig) gin.HandlerFunc {
	if len(cfg.AllowedOrigins) == 0 {
		cfg = DefaultCORSConfig()
	}

	c := cors.Config{
		AllowMethods:  cfg.AllowedMethods,
		AllowHeaders:  cfg.AllowedHeaders,
		ExposeHeaders: cfg.ExposedHeaders,
		MaxAge:        12 * time.Hour,
	}

	wildcard := false
	for _, o := range cfg.AllowedOrigins {
		if o == "*" {
			wildcard = true
			break
		}
	}

	if wildcard {
		c.AllowAllOrigins = true
	} else {
		c.AllowOrigins = cfg.AllowedOrigins
		c.AllowCredentials = cfg.AllowCredentials
	}

	return cors.New(c)
}
