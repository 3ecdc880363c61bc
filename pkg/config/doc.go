// Package config loads typed configuration from the environment, with
// optional .env files for development. It is a thin composition of
// godotenv and caarlos0/env: each component declares its own Config
// struct with `env` tags and the daemon parses them all at startup.
package config
