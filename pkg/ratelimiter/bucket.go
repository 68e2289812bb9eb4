package ratelimiter

import (
	"context"
	"fmt"
)

// Bucket is a token bucket limiter over a Store. Denied requests are still
// charged, so a client that keeps hammering stays locked out longer.
type Bucket struct {
	store  Store
	config Config
}

func NewBucket(store Store, config Config) (*Bucket, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &Bucket{store: store, config: config}, nil
}

func (b *Bucket) Allow(ctx context.Context, key string) (*Result, error) {
	return b.AllowN(ctx, key, 1)
}

func (b *Bucket) AllowN(ctx context.Context, key string, n int) (*Result, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: must be positive, got %d", ErrInvalidTokenCount, n)
	}
	return b.consume(ctx, key, n)
}

// Status reports the bucket without charging it.
func (b *Bucket) Status(ctx context.Context, key string) (*Result, error) {
	return b.consume(ctx, key, 0)
}

func (b *Bucket) Reset(ctx context.Context, key string) error {
	return b.store.Reset(ctx, key)
}

func (b *Bucket) consume(ctx context.Context, key string, n int) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrContextCancelled, err)
	}
	remaining, resetAt, err := b.store.ConsumeTokens(ctx, key, n, b.config)
	if err != nil {
		return nil, err
	}
	return &Result{Limit: b.config.Capacity, Remaining: remaining, ResetAt: resetAt}, nil
}
