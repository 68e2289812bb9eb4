package redis

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/OpenEOS-Project/openeos-api-sub001/pkg/logger"
)

// Connect parses the URL and pings the server until it answers, the
// attempts run out or ConnectTimeout passes.
func Connect(ctx context.Context, cfg Config, log *slog.Logger) (*redis.Client, error) {
	if cfg.ConnectionURL == "" {
		return nil, ErrEmptyConnectionURL
	}
	if log == nil {
		log = logger.Discard()
	}

	opts, err := redis.ParseURL(cfg.ConnectionURL)
	if err != nil {
		return nil, errors.Join(ErrFailedToParseRedisConnString, err)
	}

	if cfg.ConnectTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.ConnectTimeout)
		defer cancel()
	}

	client := redis.NewClient(opts)
	attempts := max(cfg.RetryAttempts, 1)
	var lastErr error
	for i := range attempts {
		if lastErr = client.Ping(ctx).Err(); lastErr == nil {
			return client, nil
		}

		log.WarnContext(ctx, "redis not reachable",
			logger.Component("redis"),
			slog.Int("attempt", i+1),
			slog.Int("max_attempts", attempts),
			logger.Error(lastErr),
		)

		if i == attempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			_ = client.Close()
			return nil, errors.Join(ErrRedisNotReady, ctx.Err())
		case <-time.After(cfg.RetryInterval):
		}
	}

	_ = client.Close()
	return nil, errors.Join(ErrRedisNotReady, lastErr)
}
