package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultAttemptWindow = 15 * time.Minute
	defaultMaxAttempts   = 10
)

// LoginLimiter throttles failed login attempts per account using a Redis
// counter with a sliding expiry window.
// Key format: login_attempts:<email>
type LoginLimiter struct {
	client      *redis.Client
	window      time.Duration
	maxAttempts int64
}

// NewLoginLimiter creates a LoginLimiter wrapping the given Redis client.
// Non-positive window or maxAttempts fall back to the defaults.
func NewLoginLimiter(client *redis.Client, window time.Duration, maxAttempts int) *LoginLimiter {
	if window <= 0 {
		window = defaultAttemptWindow
	}
	if maxAttempts <= 0 {
		maxAttempts = defaultMaxAttempts
	}
	return &LoginLimiter{client: client, window: window, maxAttempts: int64(maxAttempts)}
}

// TooManyAttempts reports whether the account has exhausted its attempt budget.
func (l *LoginLimiter) TooManyAttempts(ctx context.Context, email string) (bool, error) {
	n, err := l.client.Get(ctx, l.key(email)).Int64()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("limiter check: %w", err)
	}
	return n >= l.maxAttempts, nil
}

// RecordFailure increments the failure counter, starting the expiry window on
// the first failure.
func (l *LoginLimiter) RecordFailure(ctx context.Context, email string) error {
	key := l.key(email)
	n, err := l.client.Incr(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("limiter incr: %w", err)
	}
	if n == 1 {
		if err := l.client.Expire(ctx, key, l.window).Err(); err != nil {
			return fmt.Errorf("limiter expire: %w", err)
		}
	}
	return nil
}

// Reset clears the failure counter after a successful login.
func (l *LoginLimiter) Reset(ctx context.Context, email string) error {
	return l.client.Del(ctx, l.key(email)).Err()
}

func (l *LoginLimiter) key(email string) string {
	return "login_attempts:" + email
}
