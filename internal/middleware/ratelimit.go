package middleware

import (
	"net/http"
	"time"

	"eatwise/internal/config"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	limit "github.com/yangxikun/gin-limit-by-key"
	"golang.org/x/time/rate"
)

// RateLimit applies a token bucket per client IP. Buckets idle for cfg.TTL
// are dropped. The limiter cache is package-global in gin-limit-by-key, so
// keys carry an instance id to keep separate RateLimit calls apart.
func RateLimit(cfg config.RateLimitConfig) gin.HandlerFunc {
	instance := uuid.NewString()
	return limit.NewRateLimiter(
		func(c *gin.Context) string {
			return instance + "|" + c.ClientIP()
		},
		func(c *gin.Context) (*rate.Limiter, time.Duration) {
			return rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.Burst), cfg.TTL
		},
		func(c *gin.Context) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"message": "Too many requests"})
		},
	)
}
