package httpapi

import (
	"fmt"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/time/rate"

	"github.com/Sid-0307/Kudumbam/internal/infrastructure/config"
	"github.com/Sid-0307/Kudumbam/internal/infrastructure/metrics"
)

// clientLimiter hands out one token bucket per client key.
// The least recently seen clients are forgotten once the table is full.
type clientLimiter struct {
	mu       sync.Mutex
	limiters *lru.Cache[string, *rate.Limiter]
	limit    rate.Limit
	burst    int
}

func newClientLimiter(cfg config.RateLimitConfig) (*clientLimiter, error) {
	limiters, err := lru.New[string, *rate.Limiter](cfg.Clients)
	if err != nil {
		return nil, fmt.Errorf("creating limiter table: %w", err)
	}
	return &clientLimiter{
		limiters: limiters,
		limit:    rate.Limit(cfg.RPS),
		burst:    cfg.Burst,
	}, nil
}

// Allow reports whether key may make a request now.
func (l *clientLimiter) Allow(key string) bool {
	l.mu.Lock()
	lim, ok := l.limiters.Get(key)
	if !ok {
		lim = rate.NewLimiter(l.limit, l.burst)
		l.limiters.Add(key, lim)
	}
	l.mu.Unlock()
	return lim.Allow()
}

func (l *clientLimiter) middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !l.Allow(c.ClientIP()) {
			metrics.IncRateLimited()
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}
		c.Next()
	}
}
