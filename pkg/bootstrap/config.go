package bootstrap

import (
	"fmt"
	"time"

	"github.com/OpenEOS-Project/openeos-api-sub001/pkg/config"
	"github.com/OpenEOS-Project/openeos-api-sub001/pkg/email"
	"github.com/OpenEOS-Project/openeos-api-sub001/pkg/janitor"
	"github.com/OpenEOS-Project/openeos-api-sub001/pkg/pg"
	"github.com/OpenEOS-Project/openeos-api-sub001/pkg/ratelimiter"
	"github.com/OpenEOS-Project/openeos-api-sub001/pkg/redis"
	"github.com/OpenEOS-Project/openeos-api-sub001/pkg/secrets"
	"github.com/OpenEOS-Project/openeos-api-sub001/pkg/twofactor"
)

// AppConfig holds settings that belong to no single package.
type AppConfig struct {
	Env             string             `env:"APP_ENV" envDefault:"development"`
	ServiceName     string             `env:"SERVICE_NAME" envDefault:"openeos-2fa"`
	ProductName     string             `env:"PRODUCT_NAME" envDefault:"OpenEOS"` // used in email subjects
	RequirePassword bool               `env:"TWO_FACTOR_REQUIRE_PASSWORD" envDefault:"true"`
	CodeTTL         time.Duration      `env:"OTP_CODE_TTL" envDefault:"5m"`
	IssueLimit      ratelimiter.Config `envPrefix:"OTP_ISSUE_"`
}

// Settings is every config struct the service reads.
type Settings struct {
	App       AppConfig
	Secrets   secrets.Config
	TwoFactor twofactor.Config
	Postgres  pg.Config
	Redis     redis.Config
	Email     email.Config
	Janitor   janitor.Config
}

// LoadSettings reads all settings from the environment and .env.
func LoadSettings() (Settings, error) {
	var s Settings
	loaders := []func() error{
		func() error { return config.Load(&s.App) },
		func() error { return config.Load(&s.Secrets) },
		func() error { return config.Load(&s.TwoFactor) },
		func() error { return config.Load(&s.Postgres) },
		func() error { return config.Load(&s.Redis) },
		func() error { return config.Load(&s.Email) },
		func() error { return config.Load(&s.Janitor) },
	}
	for _, load := range loaders {
		if err := load(); err != nil {
			return Settings{}, fmt.Errorf("load settings: %w", err)
		}
	}
	return s, nil
}
