package middlewares

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// AIRateLimit applies a per-user token bucket to the AI routes, rpm requests
// per minute with a burst of rpm. Limiters live for the process lifetime; the
// map is small (one entry per active user).
func AIRateLimit(rpm int) gin.HandlerFunc {
	if rpm <= 0 {
		rpm = 10
	}
	var mu sync.Mutex
	limiters := map[int64]*rate.Limiter{}
	return func(c *gin.Context) {
		uid := c.GetInt64("user_id")
		mu.Lock()
		lim, ok := limiters[uid]
		if !ok {
			lim = rate.NewLimiter(rate.Limit(float64(rpm)/60.0), rpm)
			limiters[uid] = lim
		}
		mu.Unlock()
		if !lim.Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded, slow down"})
			return
		}
		c.Next()
	}
}
