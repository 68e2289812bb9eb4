package config

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Validator is implemented by config structs that need checks beyond what
// struct tags can express. Validate runs once, right after parsing.
type Validator interface {
	Validate() error
}

type configCache struct {
	mu     sync.RWMutex
	values map[string]any
}

var (
	cache = &configCache{values: make(map[string]any)}

	dotenvOnce sync.Once
)

// Load fills v from the environment, reading a .env file in the working
// directory first if one exists. Each config type is parsed once; later
// calls for the same type get the cached value.
//
//	type PostgresConfig struct {
//		ConnectionString string `env:"PG_CONN_URL,required"`
//	}
//
//	var cfg PostgresConfig
//	if err := config.Load(&cfg); err != nil {
//		return err
//	}
func Load[T any](v *T) error {
	dotenvOnce.Do(func() {
		_ = godotenv.Load()
	})
	if v == nil {
		return ErrNilPointer
	}

	key := typeKey[T]()

	cache.mu.RLock()
	cached, ok := cache.values[key]
	cache.mu.RUnlock()
	if ok {
		*v = cached.(T)
		return nil
	}

	cache.mu.Lock()
	defer cache.mu.Unlock()

	if cached, ok := cache.values[key]; ok {
		*v = cached.(T)
		return nil
	}

	var parsed T
	if err := env.Parse(&parsed); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}
	if val, ok := any(&parsed).(Validator); ok {
		if err := val.Validate(); err != nil {
			return errors.Join(ErrInvalidConfig, err)
		}
	}

	cache.values[key] = parsed
	*v = parsed
	return nil
}

// MustLoad works like Load but panics if configuration loading fails.
func MustLoad[T any](v *T) {
	if err := Load(v); err != nil {
		panic(fmt.Sprintf("failed to load required configuration: %v", err))
	}
}

// ResetCache drops every cached config. Intended for tests.
func ResetCache() {
	cache.mu.Lock()
	cache.values = make(map[string]any)
	cache.mu.Unlock()
}

func typeKey[T any]() string {
	t := reflect.TypeFor[T]()
	return t.PkgPath() + "." + t.String()
}
