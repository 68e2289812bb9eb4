package redis

import "time"

// Config describes the Redis connection. An empty ConnectionURL means Redis
// is not configured; callers decide what to fall back to.
type Config struct {
	ConnectionURL  string        `env:"REDIS_URL"`                            // redis://:password@localhost:6379/0
	RetryAttempts  int           `env:"REDIS_RETRY_ATTEMPTS" envDefault:"3"`  // ping attempts before giving up
	RetryInterval  time.Duration `env:"REDIS_RETRY_INTERVAL" envDefault:"2s"` // pause between attempts
	ConnectTimeout time.Duration `env:"REDIS_CONNECT_TIMEOUT" envDefault:"30s"`
}

// Enabled reports whether a connection URL was provided.
func (c Config) Enabled() bool {
	return c.ConnectionURL != ""
}
