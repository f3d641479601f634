package auth

import (
	"context"
	"strings"
	"time"
)

const loginAttemptKeyPrefix = "login_attempts:"

// AttemptStore counts events per key within a TTL window.
type AttemptStore interface {
	Incr(ctx context.Context, key string, ttl time.Duration) (int64, error)
	Count(ctx context.Context, key string) (int64, error)
	Delete(ctx context.Context, key string) error
}

// LoginThrottle limits failed logins per email.
type LoginThrottle struct {
	store       AttemptStore
	maxAttempts int64
	window      time.Duration
}

// NewLoginThrottle creates a throttle allowing maxAttempts failures per window.
func NewLoginThrottle(store AttemptStore, maxAttempts int, window time.Duration) *LoginThrottle {
	return &LoginThrottle{
		store:       store,
		maxAttempts: int64(maxAttempts),
		window:      window,
	}
}

func (t *LoginThrottle) key(email string) string {
	return loginAttemptKeyPrefix + strings.ToLower(email)
}

// Allowed reports whether another login attempt for email may proceed.
func (t *LoginThrottle) Allowed(ctx context.Context, email string) bool {
	if t == nil || t.store == nil {
		return true
	}
	n, err := t.store.Count(ctx, t.key(email))
	if err != nil {
		return true
	}
	return n < t.maxAttempts
}

// Failed records a failed login attempt for email.
func (t *LoginThrottle) Failed(ctx context.Context, email string) {
	if t == nil || t.store == nil {
		return
	}
	_, _ = t.store.Incr(ctx, t.key(email), t.window)
}

// Reset clears the failure count for email after a successful login.
func (t *LoginThrottle) Reset(ctx context.Context, email string) {
	if t == nil || t.store == nil {
		return
	}
	_ = t.store.Delete(ctx, t.key(email))
}
