package httpapi

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/cybergodev/anonymize"
)

// clientLimiter is a per-IP token bucket rate limiter. Buckets are created
// lazily on first sight of a client and never evicted; a long-running
// server with a large number of distinct clients should bound this with an
// eviction sweep, but the optional facade targets single-host/dev
// deployments where that is not yet a concern.
type clientLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rps      rate.Limit
	burst    int
	logger   *anonymize.AuditLogger
}

func newClientLimiter(rps int, burst int, logger *anonymize.AuditLogger) *clientLimiter {
	return &clientLimiter{
		limiters: make(map[string]*rate.Limiter),
		rps:      rate.Limit(rps),
		burst:    burst,
		logger:   logger,
	}
}

func (c *clientLimiter) allow(clientID string) bool {
	c.mu.Lock()
	limiter, ok := c.limiters[clientID]
	if !ok {
		limiter = rate.NewLimiter(c.rps, c.burst)
		c.limiters[clientID] = limiter
	}
	c.mu.Unlock()
	return limiter.Allow()
}

// RateLimitMiddleware rejects requests once a client's token bucket (keyed
// on gin's c.ClientIP()) is exhausted, logging the rejection to the audit
// stream.
func RateLimitMiddleware(rps, burst int, logger *anonymize.AuditLogger) gin.HandlerFunc {
	limiter := newClientLimiter(rps, burst, logger)

	return func(c *gin.Context) {
		clientID := c.ClientIP()
		if !limiter.allow(clientID) {
			if logger != nil {
				logger.LogRateLimitExceeded("request rate limit exceeded", map[string]any{"client": clientID})
			}
			c.AbortWithStatusJSON(http.StatusTooManyRequests, ErrorResponse{
				Error:     "rate limit exceeded",
				RequestID: requestIDFromContext(c),
			})
			return
		}
		c.Next()
	}
}
