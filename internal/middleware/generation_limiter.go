package middleware

import (
	"context"
	"fmt"
	"log"
	"time"

	"founderflow/internal/services"
)

// GenerationLimiter enforces the per-user daily cap on agent operations.
// Counters live in Redis keyed by user and UTC day; without Redis the check
// fails open so a cache outage never blocks generation.
type GenerationLimiter struct {
	redis      *services.RedisService
	dailyLimit int64
}

// NewGenerationLimiter creates the limiter. redis may be nil.
func NewGenerationLimiter(redis *services.RedisService, dailyLimit int) *GenerationLimiter {
	return &GenerationLimiter{redis: redis, dailyLimit: int64(dailyLimit)}
}

// Allow consumes one generation slot for the user today. Returns the
// remaining budget and whether the request may proceed.
func (gl *GenerationLimiter) Allow(ctx context.Context, userID string) (remaining int64, ok bool, err error) {
	if gl.redis == nil || gl.dailyLimit <= 0 {
		return -1, true, nil
	}

	key := gl.key(userID)
	window := time.Until(nextMidnightUTC()) + 24*time.Hour

	count, err := gl.redis.IncrWithWindow(ctx, key, window)
	if err != nil {
		log.Printf("⚠️  Failed to check generation quota: %v", err)
		return -1, true, nil
	}

	remaining = gl.dailyLimit - count
	if remaining < 0 {
		remaining = 0
	}
	return remaining, count <= gl.dailyLimit, nil
}

func (gl *GenerationLimiter) key(userID string) string {
	today := time.Now().UTC().Format("2006-01-02")
	return fmt.Sprintf("generations:%s:%s", userID, today)
}

// nextMidnightUTC returns the next midnight UTC
func nextMidnightUTC() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day()+1, 0, 0, 0, 0, time.UTC)
}
