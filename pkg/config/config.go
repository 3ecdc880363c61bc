package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// ErrParseFailed wraps environment parsing failures.
var ErrParseFailed = errors.New("config: failed to parse environment")

// LoadEnv loads variables from the given .env files into the process
// environment. With no arguments it tries the default ./.env and silently
// skips it when absent, so production containers need no file at all.
func LoadEnv(paths ...string) error {
	if len(paths) == 0 {
		if _, err := os.Stat(".env"); os.IsNotExist(err) {
			return nil
		}
		paths = []string{".env"}
	}
	if err := godotenv.Load(paths...); err != nil {
		return fmt.Errorf("config: load env files: %w", err)
	}
	return nil
}

// Load parses the process environment into a struct of type T using
// `env` field tags.
func Load[T any]() (T, error) {
	cfg, err := env.ParseAs[T]()
	if err != nil {
		var zero T
		return zero, errors.Join(ErrParseFailed, err)
	}
	return cfg, nil
}

// MustLoad is Load for configuration the process cannot start without.
func MustLoad[T any]() T {
	cfg, err := Load[T]()
	if err != nil {
		panic(err)
	}
	return cfg
}
