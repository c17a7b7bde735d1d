package middleware

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sangkips/servicecenter-api/internal/config"
)

// Headers the front desk app always needs, whatever the deployment lists
var (
	requiredAllowHeaders = []string{"Authorization", "Content-Type", IdempotencyKeyHeader}
	exposedHeaders       = []string{
		"Content-Length",
		"Content-Type",
		"Content-Disposition",
		"X-Request-ID",
		idempotencyReplayHeader,
	}
)

// CORSMiddleware creates a CORS middleware with the provided configuration
func CORSMiddleware(cfg *config.CORSConfig) gin.HandlerFunc {
	corsConfig := cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     cfg.AllowedMethods,
		AllowHeaders:     withHeaders(cfg.AllowedHeaders, requiredAllowHeaders...),
		ExposeHeaders:    exposedHeaders,
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}

	if len(corsConfig.AllowOrigins) == 0 {
		corsConfig.AllowOrigins = []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	}
	if len(corsConfig.AllowMethods) == 0 {
		corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	}
	if len(cfg.AllowedHeaders) == 0 {
		corsConfig.AllowHeaders = withHeaders([]string{"Accept", "Origin", "X-Request-ID"}, requiredAllowHeaders...)
	}

	return cors.New(corsConfig)
}

// withHeaders appends the missing names of extra to headers
func withHeaders(headers []string, extra ...string) []string {
	out := append([]string(nil), headers...)
	for _, h := range extra {
		found := false
		for _, have := range out {
			if http.CanonicalHeaderKey(have) == http.CanonicalHeaderKey(h) {
				found = true
				break
			}
		}
		if !found {
			out = append(out, h)
		}
	}
	return out
}
