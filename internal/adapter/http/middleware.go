package httpadapter

import (
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// clientLimiter keeps one token bucket per client address. A bucket left
// alone for a whole window has refilled, so it is dropped and recreated on
// the next request.
type clientLimiter struct {
	mu        sync.Mutex
	clients   map[string]*client
	rate      rate.Limit
	burst     int
	idle      time.Duration
	lastSweep time.Time
	now       func() time.Time
}

func newClientLimiter(requestsPerWindow int, window time.Duration, now func() time.Time) *clientLimiter {
	return &clientLimiter{
		clients:   make(map[string]*client),
		rate:      rate.Limit(float64(requestsPerWindow) / window.Seconds()),
		burst:     max(1, requestsPerWindow/2),
		idle:      window,
		lastSweep: now(),
		now:       now,
	}
}

// allow takes a token for addr, sweeping idle clients at most once per window.
func (l *clientLimiter) allow(addr string) bool {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()
	if now.Sub(l.lastSweep) >= l.idle {
		for a, c := range l.clients {
			if now.Sub(c.lastSeen) >= l.idle {
				delete(l.clients, a)
			}
		}
		l.lastSweep = now
	}

	c, ok := l.clients[addr]
	if !ok {
		c = &client{limiter: rate.NewLimiter(l.rate, l.burst)}
		l.clients[addr] = c
	}
	c.lastSeen = now
	return c.limiter.AllowN(now, 1)
}

func (l *clientLimiter) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.clients)
}

// RateLimitMiddleware limits each client address to requestsPerWindow
// requests per window. It expects middleware.RealIP to have normalised
// RemoteAddr.
func RateLimitMiddleware(requestsPerWindow int, window time.Duration) func(http.Handler) http.Handler {
	return rateLimit(newClientLimiter(requestsPerWindow, window, time.Now), window)
}

func rateLimit(l *clientLimiter, window time.Duration) func(http.Handler) http.Handler {
	retryAfter := strconv.Itoa(int(window.Seconds()))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			addr, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				addr = r.RemoteAddr
			}
			if !l.allow(addr) {
				w.Header().Set("Retry-After", retryAfter)
				http.Error(w, "too many requests", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
