package ratelimiter

import (
	"fmt"
	"time"
)

// Result is the outcome of a check.
type Result struct {
	Limit     int       // bucket capacity
	Remaining int       // tokens left; negative when the request was denied
	ResetAt   time.Time // next refill
}

// Allowed reports whether the request fit in the bucket.
func (r *Result) Allowed() bool {
	return r.Remaining >= 0
}

// RetryAfter is how long to wait before retrying, 0 if allowed.
func (r *Result) RetryAfter() time.Duration {
	if r.Allowed() {
		return 0
	}
	return time.Until(r.ResetAt)
}

// Config describes a token bucket. Embed it with an env prefix to load it
// from the environment.
type Config struct {
	Capacity       int           `env:"CAPACITY" envDefault:"5"`         // burst size
	RefillRate     int           `env:"REFILL_RATE" envDefault:"1"`      // tokens added per interval
	RefillInterval time.Duration `env:"REFILL_INTERVAL" envDefault:"1m"` // time between refills
}

func (c Config) Validate() error {
	if c.Capacity <= 0 {
		return fmt.Errorf("%w: capacity must be positive, got %d", ErrInvalidConfig, c.Capacity)
	}
	if c.RefillRate <= 0 {
		return fmt.Errorf("%w: refill rate must be positive, got %d", ErrInvalidConfig, c.RefillRate)
	}
	if c.RefillInterval <= 0 {
		return fmt.Errorf("%w: refill interval must be positive, got %v", ErrInvalidConfig, c.RefillInterval)
	}
	return nil
}

// fullRefill is how long an empty bucket takes to fill up, plus one interval.
// Idle state older than this carries no information and can be dropped.
func (c Config) fullRefill() time.Duration {
	steps := (c.Capacity + c.RefillRate - 1) / c.RefillRate
	return time.Duration(steps+1) * c.RefillInterval
}
