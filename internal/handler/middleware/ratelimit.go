package middleware

import (
	"net/http"
	"sync"

	"equipment-reservation/internal/handler/httperr"
	"equipment-reservation/internal/pkg/config"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// IPRateLimiter keeps one token bucket per client IP.
type IPRateLimiter struct {
	ips map[string]*rate.Limiter
	mu  sync.RWMutex
	r   rate.Limit
	b   int
}

func NewIPRateLimiter(cfg config.RateLimitConfig) *IPRateLimiter {
	return &IPRateLimiter{
		ips: make(map[string]*rate.Limiter),
		r:   rate.Limit(cfg.RequestsPerSecond),
		b:   cfg.Burst,
	}
}

func (i *IPRateLimiter) limiter(ip string) *rate.Limiter {
	i.mu.RLock()
	limiter, exists := i.ips[ip]
	i.mu.RUnlock()
	if exists {
		return limiter
	}

	i.mu.Lock()
	defer i.mu.Unlock()
	if limiter, exists = i.ips[ip]; !exists {
		limiter = rate.NewLimiter(i.r, i.b)
		i.ips[ip] = limiter
	}
	return limiter
}

// Limit guards reservation submission and login.
func (i *IPRateLimiter) Limit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !i.limiter(c.ClientIP()).Allow() {
			httperr.AbortWithError(c, http.StatusTooManyRequests, httpError("rate limited"), "Too many requests", nil)
			return
		}
	}
}
