package middleware

import (
	"sync"
	"time"

	"backoffice/config"
	domainerrors "backoffice/internal/domain/errors"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
)

const (
	defaultLoginRatePerMinute = 10
	limiterIdleTimeout        = 10 * time.Minute
	limiterPruneThreshold     = 1024
)

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimitMiddleware throttles credential endpoints per client IP so a
// password or token guessing loop burns out quickly.
type RateLimitMiddleware struct {
	mu      sync.Mutex
	clients map[string]*clientLimiter
	perMin  int
	burst   int
}

// NewRateLimitMiddleware creates the limiter with the configured per-minute
// rate for login and refresh attempts.
func NewRateLimitMiddleware(cfg *config.Config) *RateLimitMiddleware {
	perMin := defaultLoginRatePerMinute
	if cfg.Auth != nil && cfg.Auth.LoginRatePerMinute > 0 {
		perMin = cfg.Auth.LoginRatePerMinute
	}

	return &RateLimitMiddleware{
		clients: make(map[string]*clientLimiter),
		perMin:  perMin,
		burst:   perMin,
	}
}

// LimitAuth rejects requests beyond the per-IP budget with 429.
func (m *RateLimitMiddleware) LimitAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !m.allow(c.RealIP()) {
			return domainerrors.ErrRateLimited
		}

		return next(c)
	}
}

func (m *RateLimitMiddleware) allow(ip string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()

	client, ok := m.clients[ip]
	if !ok {
		client = &clientLimiter{
			limiter: rate.NewLimiter(rate.Limit(float64(m.perMin)/60.0), m.burst),
		}
		m.clients[ip] = client
	}
	client.lastSeen = now

	if len(m.clients) > limiterPruneThreshold {
		m.prune(now)
	}

	return client.limiter.Allow()
}

// prune drops limiters idle long enough that their bucket is full again.
// Caller holds the lock.
func (m *RateLimitMiddleware) prune(now time.Time) {
	for ip, client := range m.clients {
		if now.Sub(client.lastSeen) > limiterIdleTimeout {
			delete(m.clients, ip)
		}
	}
}
