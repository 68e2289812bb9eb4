// Package ratelimiter implements token bucket rate limiting.
//
// A Bucket holds up to Capacity tokens and gains RefillRate tokens every
// RefillInterval. Each request takes one or more; when the bucket runs dry
// the request is denied and Result.RetryAfter says when to come back.
// Denied requests still take their tokens.
//
// Two stores are provided: MemoryStore for a single process and RedisStore,
// which runs the same algorithm in a Lua script so all instances share one
// bucket per key.
//
//	store := ratelimiter.NewRedisStore(client)
//	limiter, err := ratelimiter.NewBucket(store, ratelimiter.Config{
//		Capacity:       5,
//		RefillRate:     1,
//		RefillInterval: time.Minute,
//	})
//
//	res, err := limiter.Allow(ctx, "otp:"+userID.String())
//	if err != nil {
//		return err
//	}
//	if !res.Allowed() {
//		// too many requests; retry after res.RetryAfter()
//	}
//
// Bucket satisfies otpcode.Limiter and throttles one-time code issuance.
package ratelimiter
