package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const resetThrottleTTL = 15 * time.Minute

// ResetThrottle rate-limits password-reset mails per address, backed by
// Redis. Key format: reset:<email>
type ResetThrottle struct {
	client *redis.Client
}

// NewResetThrottle creates a ResetThrottle wrapping the given Redis client.
func NewResetThrottle(client *redis.Client) *ResetThrottle {
	return &ResetThrottle{client: client}
}

// Allow reports whether a reset mail may be sent to email right now.
func (t *ResetThrottle) Allow(ctx context.Context, email string) (bool, error) {
	n, err := t.client.Exists(ctx, t.key(email)).Result()
	if err != nil {
		return false, fmt.Errorf("throttle check: %w", err)
	}
	return n == 0, nil
}

// Mark records that a reset mail was just issued for email (expires after
// resetThrottleTTL).
func (t *ResetThrottle) Mark(ctx context.Context, email string) error {
	return t.client.Set(ctx, t.key(email), "1", resetThrottleTTL).Err()
}

func (t *ResetThrottle) key(email string) string {
	return "reset:" + email
}
