// Package config loads typed configuration structs from environment
// variables using github.com/caarlos0/env struct tags, with an optional .env
// file read through github.com/joho/godotenv.
//
// Each struct type is parsed once per process and cached. Structs that
// implement Validator are checked after parsing, so a bad value fails at
// startup instead of on first use.
//
// # Usage
//
//	var cfg secrets.Config
//	config.MustLoad(&cfg)
//
// # Error Handling
//
// Parse failures wrap ErrParsingConfig and validation failures wrap
// ErrInvalidConfig; match them with errors.Is.
package config
