package middleware

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// CORSConfig holds CORS middleware configuration
type CORSConfig struct {
	AllowOrigins []string
	AllowMethods []string
	AllowHeaders []string
	MaxAge       time.Duration
}

// CORS returns the gin-contrib CORS middleware. A single "*" origin allows
// every origin without credentials; an empty list rejects every
// cross-origin request.
func CORS(cfg CORSConfig) gin.HandlerFunc {
	corsConfig := cors.DefaultConfig()
	switch {
	case len(cfg.AllowOrigins) == 1 && cfg.AllowOrigins[0] == "*":
		corsConfig.AllowAllOrigins = true
	case len(cfg.AllowOrigins) == 0:
		corsConfig.AllowOriginFunc = func(string) bool { return false }
	default:
		corsConfig.AllowOrigins = cfg.AllowOrigins
		corsConfig.AllowCredentials = true
	}
	if len(cfg.AllowMethods) > 0 {
		corsConfig.AllowMethods = cfg.AllowMethods
	}
	corsConfig.AddAllowHeaders(cfg.AllowHeaders...)
	corsConfig.AddExposeHeaders(RequestIDHeader, "Content-Disposition")
	if cfg.MaxAge > 0 {
		corsConfig.MaxAge = cfg.MaxAge
	}
	return cors.New(corsConfig)
}
