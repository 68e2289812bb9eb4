package config_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OpenEOS-Project/openeos-api-sub001/pkg/config"
)

type issuerConfig struct {
	Issuer string `env:"TEST_CFG_ISSUER" envDefault:"OpenEOS"`
	Digits int    `env:"TEST_CFG_DIGITS" envDefault:"6"`
}

type cachedConfig struct {
	Value string `env:"TEST_CFG_CACHED"`
}

type requiredConfig struct {
	Secret string `env:"TEST_CFG_REQUIRED,required"`
}

type validatedConfig struct {
	TTL int `env:"TEST_CFG_TTL" envDefault:"0"`
}

func (c *validatedConfig) Validate() error {
	if c.TTL <= 0 {
		return errors.New("ttl must be positive")
	}
	return nil
}

func TestLoad_Defaults(t *testing.T) {
	config.ResetCache()

	var cfg issuerConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "OpenEOS", cfg.Issuer)
	assert.Equal(t, 6, cfg.Digits)
}

func TestLoad_FromEnvironment(t *testing.T) {
	config.ResetCache()
	t.Setenv("TEST_CFG_ISSUER", "Acme")
	t.Setenv("TEST_CFG_DIGITS", "8")

	var cfg issuerConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "Acme", cfg.Issuer)
	assert.Equal(t, 8, cfg.Digits)
}

func TestLoad_Cached(t *testing.T) {
	config.ResetCache()
	t.Setenv("TEST_CFG_CACHED", "first")

	var first cachedConfig
	require.NoError(t, config.Load(&first))

	t.Setenv("TEST_CFG_CACHED", "second")
	var second cachedConfig
	require.NoError(t, config.Load(&second))
	assert.Equal(t, "first", second.Value)

	config.ResetCache()
	var third cachedConfig
	require.NoError(t, config.Load(&third))
	assert.Equal(t, "second", third.Value)
}

func TestLoad_Required(t *testing.T) {
	config.ResetCache()

	var cfg requiredConfig
	err := config.Load(&cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrParsingConfig)
}

func TestLoad_Validate(t *testing.T) {
	config.ResetCache()

	var cfg validatedConfig
	err := config.Load(&cfg)
	assert.ErrorIs(t, err, config.ErrInvalidConfig)

	config.ResetCache()
	t.Setenv("TEST_CFG_TTL", "5")
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, 5, cfg.TTL)
}

func TestLoad_NilPointer(t *testing.T) {
	var cfg *issuerConfig
	assert.ErrorIs(t, config.Load(cfg), config.ErrNilPointer)
}

func TestMustLoad_Panics(t *testing.T) {
	config.ResetCache()
	assert.Panics(t, func() {
		var cfg requiredConfig
		config.MustLoad(&cfg)
	})
}
