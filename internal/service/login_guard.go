package service

import (
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
)

// LoginGuard counts failed logins per key inside a fixed window that starts
// at the first failure.
type LoginGuard struct {
	failures *cache.Cache
	max      int
	window   time.Duration
}

// NewLoginGuard returns a guard; max <= 0 disables it.
func NewLoginGuard(max int, window time.Duration) *LoginGuard {
	if window <= 0 {
		window = 15 * time.Minute
	}
	return &LoginGuard{
		failures: cache.New(window, 2*window),
		max:      max,
		window:   window,
	}
}

func loginKey(identifier, clientIP string) string {
	return strings.ToLower(strings.TrimSpace(identifier)) + "|" + clientIP
}

// Blocked reports whether key has reached the failure limit.
func (g *LoginGuard) Blocked(key string) bool {
	if g.max <= 0 {
		return false
	}
	n, ok := g.failures.Get(key)
	return ok && n.(int) >= g.max
}

// Fail records one failed attempt.
func (g *LoginGuard) Fail(key string) {
	if g.max <= 0 {
		return
	}
	// Add opens the window; it only fails when the key already exists
	if err := g.failures.Add(key, 1, g.window); err == nil {
		return
	}
	if _, err := g.failures.IncrementInt(key, 1); err != nil {
		// expired between the two calls
		_ = g.failures.Add(key, 1, g.window)
	}
}

// Reset forgets the failures of key.
func (g *LoginGuard) Reset(key string) {
	g.failures.Delete(key)
}
