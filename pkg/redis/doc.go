// Package redis connects to Redis with retries and exposes a health check.
//
// The client backs the shared rate limiter store (ratelimiter.RedisStore)
// that throttles one-time code issuance across instances.
//
//	client, err := redis.Connect(ctx, cfg, log)
//	if err != nil {
//		return err
//	}
//	defer client.Close()
//
//	limiterStore := ratelimiter.NewRedisStore(client)
//
// Config is loaded from the environment with the REDIS_ prefix. When
// REDIS_URL is empty Config.Enabled reports false and callers fall back to
// an in-process store.
package redis
