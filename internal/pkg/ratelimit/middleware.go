package ratelimit

import (
	"math"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xyz-asif/spire/internal/pkg/response"
)

// KeyFunc extracts the limiter key from a request
type KeyFunc func(c *gin.Context) string

// ByIP keys requests by client address
func ByIP(c *gin.Context) string {
	return c.ClientIP()
}

// ByUser keys requests by the authenticated user, falling back to client address
func ByUser(c *gin.Context) string {
	if userID := c.GetString("userID"); userID != "" {
		return "user:" + userID
	}
	return c.ClientIP()
}

// Middleware creates a rate limiting middleware keyed by client address
func Middleware(limiter *RateLimiter) gin.HandlerFunc {
	return KeyedMiddleware(limiter, ByIP)
}

// UserBasedMiddleware creates a rate limiting middleware keyed by user ID
func UserBasedMiddleware(limiter *RateLimiter) gin.HandlerFunc {
	return KeyedMiddleware(limiter, ByUser)
}

// KeyedMiddleware creates a rate limiting middleware with a custom key function
func KeyedMiddleware(limiter *RateLimiter, keyFunc KeyFunc) gin.HandlerFunc {
	limit := strconv.Itoa(limiter.Limit())

	return func(c *gin.Context) {
		key := keyFunc(c)
		if key == "" {
			key = c.ClientIP()
		}

		allowed := limiter.Allow(key)
		resetTime := limiter.ResetTime(key)

		c.Header("X-RateLimit-Limit", limit)
		c.Header("X-RateLimit-Reset", resetTime.Format(time.RFC3339))

		if !allowed {
			retryAfter := int(math.Ceil(time.Until(resetTime).Seconds()))
			if retryAfter < 1 {
				retryAfter = 1
			}

			c.Header("X-RateLimit-Remaining", "0")
			c.Header("Retry-After", strconv.Itoa(retryAfter))
			response.TooManyRequests(c, "Rate limit exceeded. Try again later.", gin.H{
				"retry_after": strconv.Itoa(retryAfter) + "s",
				"reset_time":  resetTime.Format(time.RFC3339),
				"limit":       limiter.Limit(),
			})
			c.Abort()
			return
		}

		c.Header("X-RateLimit-Remaining", strconv.Itoa(limiter.Remaining(key)))
		c.Next()
	}
}
