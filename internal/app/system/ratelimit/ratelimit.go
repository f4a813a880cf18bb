// Package ratelimit provides sliding-window rate limiting for the API.
package ratelimit

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"
)

// Limiter counts requests per key over a sliding window. It is safe for
// concurrent use.
type Limiter struct {
	mu       sync.Mutex
	windows  map[string]*window
	limit    int
	duration time.Duration
}

type window struct {
	count     int
	expiresAt time.Time
}

// New creates a limiter allowing limit requests per duration per key.
func New(limit int, duration time.Duration) *Limiter {
	return &Limiter{
		windows:  make(map[string]*window),
		limit:    limit,
		duration: duration,
	}
}

// Allow reports whether a request under key is within the limit, and
// counts it. Expired windows are pruned as they are touched.
func (l *Limiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	w, exists := l.windows[key]
	if !exists || now.After(w.expiresAt) {
		l.windows[key] = &window{count: 1, expiresAt: now.Add(l.duration)}
		l.prune(now)
		return true
	}
	if w.count >= l.limit {
		return false
	}
	w.count++
	return true
}

// Reset clears the window for key.
func (l *Limiter) Reset(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.windows, key)
}

// prune drops expired windows. Caller holds mu.
func (l *Limiter) prune(now time.Time) {
	if len(l.windows) < 1024 {
		return
	}
	for key, w := range l.windows {
		if now.After(w.expiresAt) {
			delete(l.windows, key)
		}
	}
}

// ClientIP extracts the client IP from a request, honoring proxy headers
// before falling back to RemoteAddr.
func ClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if ip := strings.TrimSpace(strings.Split(xff, ",")[0]); ip != "" {
			return ip
		}
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// LoginLimiter throttles sign-in attempts by client IP and by the
// username being tried, so neither a single host nor a single targeted
// account can be hammered.
type LoginLimiter struct {
	ipLimiter   *Limiter
	userLimiter *Limiter
}

// NewLoginLimiter returns a limiter with the default login thresholds:
// 10 attempts per IP per minute, 5 attempts per username per 5 minutes.
func NewLoginLimiter() *LoginLimiter {
	return &LoginLimiter{
		ipLimiter:   New(10, time.Minute),
		userLimiter: New(5, 5*time.Minute),
	}
}

// NewLoginLimiterWithConfig returns a limiter with custom thresholds.
func NewLoginLimiterWithConfig(ipLimit int, ipDuration time.Duration, userLimit int, userDuration time.Duration) *LoginLimiter {
	return &LoginLimiter{
		ipLimiter:   New(ipLimit, ipDuration),
		userLimiter: New(userLimit, userDuration),
	}
}

// Check reports whether a sign-in attempt should be allowed. The second
// return value carries the rejection message when it is not.
func (ll *LoginLimiter) Check(r *http.Request, username string) (bool, string) {
	if !ll.ipLimiter.Allow(ClientIP(r)) {
		return false, "too many login attempts, wait a minute before trying again"
	}
	if username != "" {
		key := strings.ToLower(strings.TrimSpace(username))
		if !ll.userLimiter.Allow(key) {
			return false, "too many login attempts for this account, wait a few minutes"
		}
	}
	return true, ""
}

// ResetUser clears the per-account window after a successful sign-in.
func (ll *LoginLimiter) ResetUser(username string) {
	if username != "" {
		ll.userLimiter.Reset(strings.ToLower(strings.TrimSpace(username)))
	}
}
