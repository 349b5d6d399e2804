package middleware

import (
	"net"
	"net/http"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/rs/zerolog"

	"github.com/agentstation/quotebook/internal/server/response"
)

// RateLimiter counts requests per client IP in fixed windows. Counters
// expire with their window, so idle clients cost nothing.
type RateLimiter struct {
	counters *gocache.Cache
	limit    int
	window   time.Duration
	logger   *zerolog.Logger
}

// NewRateLimiter allows limit requests per minute per IP.
func NewRateLimiter(limit int, logger *zerolog.Logger) *RateLimiter {
	return NewRateLimiterWindow(limit, time.Minute, logger)
}

// NewRateLimiterWindow allows limit requests per window per IP.
func NewRateLimiterWindow(limit int, window time.Duration, logger *zerolog.Logger) *RateLimiter {
	return &RateLimiter{
		counters: gocache.New(window, 2*window),
		limit:    limit,
		window:   window,
		logger:   logger,
	}
}

// Allow records a request from ip and reports whether it fits the window.
func (rl *RateLimiter) Allow(ip string) bool {
	if rl.limit <= 0 {
		return true
	}
	// Add only succeeds for the first request of a window.
	if err := rl.counters.Add(ip, 1, rl.window); err == nil {
		return true
	}
	n, err := rl.counters.IncrementInt(ip, 1)
	if err != nil {
		// The window expired between Add and IncrementInt.
		rl.counters.Set(ip, 1, rl.window)
		return true
	}
	return n <= rl.limit
}

// RateLimit middleware limits requests per IP address.
func RateLimit(rl *RateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := clientIP(r)
			if !rl.Allow(ip) {
				rl.logger.Warn().
					Str("ip", ip).
					Str("path", r.URL.Path).
					Msg("Rate limit exceeded")

				response.RateLimited(w, "Too many requests. Please try again later.")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// clientIP prefers the first X-Forwarded-For hop, then the remote host.
func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")
		return strings.TrimSpace(first)
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
