package janitor

import "time"

type Config struct {
	Schedule   string        `env:"CLEANUP_INTERVAL" envDefault:"1h"` // duration or HH:MM
	Timeout    time.Duration `env:"CLEANUP_TIMEOUT" envDefault:"5m"`  // per run
	RunOnStart bool          `env:"CLEANUP_RUN_ON_START" envDefault:"true"`
}
