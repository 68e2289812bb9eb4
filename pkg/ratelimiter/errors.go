package ratelimiter

import "errors"

var (
	ErrInvalidConfig     = errors.New("invalid rate limiter configuration")
	ErrInvalidTokenCount = errors.New("invalid token count")
	ErrContextCancelled  = errors.New("context cancelled")
	ErrStoreUnavailable  = errors.New("rate limiter store unavailable")
)
