package ratelimiter

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// consumeScript is the MemoryStore algorithm run atomically inside Redis.
// State is a hash {tokens, refilled_at} with a TTL of one full refill.
var consumeScript = redis.NewScript(`
local capacity  = tonumber(ARGV[1])
local rate      = tonumber(ARGV[2])
local interval  = tonumber(ARGV[3])
local requested = tonumber(ARGV[4])
local now       = tonumber(ARGV[5])
local ttl       = tonumber(ARGV[6])

local state    = redis.call('HMGET', KEYS[1], 'tokens', 'refilled_at')
local tokens   = tonumber(state[1])
local refilled = tonumber(state[2])
if tokens == nil or refilled == nil then
	tokens = capacity
	refilled = now
end

local steps = math.floor((now - refilled) / interval)
if steps > 0 then
	tokens = math.min(tokens + steps * rate, capacity)
	refilled = now
end

tokens = tokens - requested
redis.call('HSET', KEYS[1], 'tokens', tokens, 'refilled_at', refilled)
redis.call('PEXPIRE', KEYS[1], ttl)
return {tokens, refilled + interval}
`)

// RedisStore keeps buckets in Redis so every instance shares the same
// limits.
type RedisStore struct {
	client redis.Cmdable
	prefix string
	now    func() time.Time
}

type RedisStoreOption func(*RedisStore)

// WithKeyPrefix namespaces bucket keys. Default "ratelimit:".
func WithKeyPrefix(prefix string) RedisStoreOption {
	return func(s *RedisStore) { s.prefix = prefix }
}

// WithRedisClock replaces time.Now, for tests.
func WithRedisClock(now func() time.Time) RedisStoreOption {
	return func(s *RedisStore) {
		if now != nil {
			s.now = now
		}
	}
}

func NewRedisStore(client redis.Cmdable, opts ...RedisStoreOption) *RedisStore {
	s := &RedisStore{client: client, prefix: "ratelimit:", now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *RedisStore) ConsumeTokens(ctx context.Context, key string, tokens int, config Config) (int, time.Time, error) {
	interval := max(config.RefillInterval.Milliseconds(), 1)
	ttl := max(config.fullRefill().Milliseconds(), interval)

	res, err := consumeScript.Run(ctx, s.client, []string{s.prefix + key},
		config.Capacity, config.RefillRate, interval, tokens, s.now().UnixMilli(), ttl,
	).Int64Slice()
	if err != nil {
		return 0, time.Time{}, errors.Join(ErrStoreUnavailable, err)
	}
	if len(res) != 2 {
		return 0, time.Time{}, ErrStoreUnavailable
	}
	return int(res[0]), time.UnixMilli(res[1]), nil
}

func (s *RedisStore) Reset(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.prefix+key).Err(); err != nil {
		return errors.Join(ErrStoreUnavailable, err)
	}
	return nil
}
