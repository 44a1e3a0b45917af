package middleware

import (
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/time/rate"
)

const (
	limiterIdleTimeout = 30 * time.Minute
	limiterPruneSize   = 10000
)

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type rateLimiter struct {
	bucket    map[string]*limiterEntry
	rate      rate.Limit
	burstSize int
	mutex     *sync.Mutex
	now       func() time.Time
}

func newRateLimiter(reqRate rate.Limit, burstSize int) *rateLimiter {
	return &rateLimiter{
		bucket:    make(map[string]*limiterEntry),
		rate:      reqRate,
		burstSize: burstSize,
		mutex:     &sync.Mutex{},
		now:       time.Now,
	}
}

func (r *rateLimiter) GetLimiterFrom(key string) *rate.Limiter {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	now := r.now()
	if len(r.bucket) >= limiterPruneSize {
		r.prune(now)
	}

	entry, exist := r.bucket[key]
	if !exist {
		entry = &limiterEntry{limiter: rate.NewLimiter(r.rate, r.burstSize)}
		r.bucket[key] = entry
	}
	entry.lastSeen = now

	return entry.limiter
}

func (r *rateLimiter) prune(now time.Time) {
	for key, entry := range r.bucket {
		if now.Sub(entry.lastSeen) > limiterIdleTimeout {
			delete(r.bucket, key)
		}
	}
}

func (m *middleware) NewRateLimiter(ctx *fiber.Ctx) error {
	clientIP := ctx.IP()
	limiter := m.rateLimitter.GetLimiterFrom(clientIP)

	if !limiter.Allow() {
		m.log.Warnf("too many requests for IP %s", clientIP)
		return ctx.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
			"error": "Too many requests",
		})
	}

	return ctx.Next()
}

// AllowMessage applies the per customer token bucket to inbound chat messages.
func (m *middleware) AllowMessage(customerID string) bool {
	if m.messageLimiter.GetLimiterFrom(customerID).Allow() {
		return true
	}
	m.log.Warnf("too many messages from customer %s", customerID)
	return false
}
