package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// RateLimiter caps process-wide request throughput.
type RateLimiter struct {
	limiter *rate.Limiter
}

// NewRateLimiter builds a limiter from a requests-per-minute cap. A
// non-positive cap disables limiting.
func NewRateLimiter(rpm int) *RateLimiter {
	if rpm <= 0 {
		return &RateLimiter{}
	}
	perSecond := rate.Limit(float64(rpm) / 60.0)
	return &RateLimiter{limiter: rate.NewLimiter(perSecond, rpm/10+1)}
}

// Handler rejects requests over the cap with 429.
func (r *RateLimiter) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if r.limiter != nil && !r.limiter.Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}
		c.Next()
	}
}
