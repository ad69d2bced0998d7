package middleware

import (
	"net/http"
	"sync"
	"time"
)

const (
	evictInterval = 5 * time.Minute
	clientIdleTTL = 10 * time.Minute
)

// RateLimiter throttles clients by IP. Each client holds a token bucket that
// refills at rate tokens per second up to burst; a request spends one token.
type RateLimiter struct {
	mu      sync.Mutex
	clients map[string]*tokenBucket
	rate    float64
	burst   int
}

type tokenBucket struct {
	tokens float64
	seen   time.Time
}

// NewRateLimiter creates a limiter allowing rate requests/sec per IP with the
// given burst size. A background goroutine evicts idle clients.
func NewRateLimiter(rate float64, burst int) *RateLimiter {
	rl := &RateLimiter{
		clients: make(map[string]*tokenBucket),
		rate:    rate,
		burst:   burst,
	}
	go rl.evictIdle()
	return rl
}

// Allow reports whether a request from ip fits within its token budget.
// New clients start with a full bucket.
func (rl *RateLimiter) Allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	b, ok := rl.clients[ip]
	if !ok {
		b = &tokenBucket{tokens: float64(rl.burst), seen: now}
		rl.clients[ip] = b
	}

	b.tokens += now.Sub(b.seen).Seconds() * rl.rate
	if b.tokens > float64(rl.burst) {
		b.tokens = float64(rl.burst)
	}
	b.seen = now

	if b.tokens < 1 {
		return false
	}
	b.tokens--
	return true
}

// evictIdle drops buckets not touched within clientIdleTTL so the client map
// stays bounded.
func (rl *RateLimiter) evictIdle() {
	ticker := time.NewTicker(evictInterval)
	defer ticker.Stop()
	for range ticker.C {
		rl.mu.Lock()
		cutoff := time.Now().Add(-clientIdleTTL)
		for ip, b := range rl.clients {
			if b.seen.Before(cutoff) {
				delete(rl.clients, ip)
			}
		}
		rl.mu.Unlock()
	}
}

// RateLimit rejects requests over the per-IP budget with 429 Too Many
// Requests. The client IP is taken from X-Real-Ip when chi's RealIP
// middleware has set it, falling back to RemoteAddr.
func RateLimit(rate float64, burst int) func(http.Handler) http.Handler {
	limiter := NewRateLimiter(rate, burst)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := r.RemoteAddr
			if xri := r.Header.Get("X-Real-Ip"); xri != "" {
				ip = xri
			}
			if !limiter.Allow(ip) {
				http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
