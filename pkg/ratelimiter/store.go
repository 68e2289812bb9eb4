package ratelimiter

import (
	"context"
	"time"
)

// Store keeps bucket state.
type Store interface {
	// ConsumeTokens refills the bucket for the time elapsed, then takes
	// tokens from it. A negative remaining count means the request is denied.
	ConsumeTokens(ctx context.Context, key string, tokens int, config Config) (remaining int, resetAt time.Time, err error)
	Reset(ctx context.Context, key string) error
}
