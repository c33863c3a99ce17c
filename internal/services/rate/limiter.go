package rate

import (
	"context"
	"fmt"
	"time"
)

// WindowStore counts hits inside a fixed expiring window.
type WindowStore interface {
	IncrementWindow(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error)
	WindowState(ctx context.Context, key string) (int64, time.Duration, error)
}

// Decision reports the outcome of a single limiter check.
type Decision struct {
	Allowed    bool
	Count      int64
	RetryAfter time.Duration
}

// Limiter enforces at most Max hits per Window under a shared key prefix.
type Limiter struct {
	store  WindowStore
	prefix string
	window time.Duration
	max    int64
}

func NewLimiter(store WindowStore, prefix string, window time.Duration, max int64) *Limiter {
	return &Limiter{
		store:  store,
		prefix: prefix,
		window: window,
		max:    max,
	}
}

// Allow registers one hit for the subject and reports whether it fits
// the window. A denied hit still advances the counter, so repeated
// retries do not shorten the wait.
func (l *Limiter) Allow(ctx context.Context, subject int64) (Decision, error) {
	if l == nil || l.store == nil {
		return Decision{Allowed: true}, nil
	}

	count, ttl, err := l.store.IncrementWindow(ctx, l.key(subject), l.window)
	if err != nil {
		return Decision{}, fmt.Errorf("rate limiter %s: %w", l.prefix, err)
	}

	if count > l.max {
		return Decision{Allowed: false, Count: count, RetryAfter: ttl}, nil
	}
	return Decision{Allowed: true, Count: count}, nil
}

// Peek reports the current window state without registering a hit.
func (l *Limiter) Peek(ctx context.Context, subject int64) (Decision, error) {
	if l == nil || l.store == nil {
		return Decision{Allowed: true}, nil
	}

	count, ttl, err := l.store.WindowState(ctx, l.key(subject))
	if err != nil {
		return Decision{}, fmt.Errorf("rate limiter %s: %w", l.prefix, err)
	}

	if count >= l.max {
		return Decision{Allowed: false, Count: count, RetryAfter: ttl}, nil
	}
	return Decision{Allowed: true, Count: count}, nil
}

func (l *Limiter) key(subject int64) string {
	return fmt.Sprintf("rate:%s:%d", l.prefix, subject)
}
