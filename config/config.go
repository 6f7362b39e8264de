// Package config for config details
package config

import (
	"fmt"
	"io"
	"os"
	"strconv"

	env "github.com/hashicorp/go-envparse"
)

// Store backends
const (
	StoreMemory   = "memory"
	StoreBolt     = "bolt"
	StoreRedis    = "redis"
	StorePostgres = "postgres"
	StoreSQLite   = "sqlite"
)

const (
	defaultListenAddr = ":8080"
	defaultRetries    = 3
)

// Configuration struct to hold app configurations
type Configuration struct {
	ListenAddr  string
	Store       string
	BoltPath    string
	RedisAddr   string
	DatabaseURL string
	Retries     uint64
	Debug       bool
}

// Default returns the configuration used when no env file is given
func Default() Configuration {
	return Configuration{
		ListenAddr: defaultListenAddr,
		Store:      StoreMemory,
		Retries:    defaultRetries,
	}
}

// ReadConfFile read configurations of env file
func ReadConfFile(path string) (Configuration, error) {
	f, err := os.Open(path)
	if err != nil {
		return Configuration{}, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	return Parse(f)
}

// Parse parses env formatted configurations, unknown keys are rejected
func Parse(r io.Reader) (Configuration, error) {
	configMap, err := env.Parse(r)
	if err != nil {
		return Configuration{}, fmt.Errorf("failed to load config: %w", err)
	}

	config := Default()
	for key, value := range configMap {
		switch key {
		case "LISTEN_ADDR":
			config.ListenAddr = value

		case "STORE":
			config.Store = value

		case "BOLT_PATH":
			config.BoltPath = value

		case "REDIS_ADDR":
			config.RedisAddr = value

		case "DATABASE_URL":
			config.DatabaseURL = value

		case "PROVISION_RETRIES":
			retries, err := strconv.ParseUint(value, 10, 64)
			if err != nil {
				return Configuration{}, fmt.Errorf("PROVISION_RETRIES is invalid: %w", err)
			}
			config.Retries = retries

		case "DEBUG":
			debug, err := strconv.ParseBool(value)
			if err != nil {
				return Configuration{}, fmt.Errorf("DEBUG is invalid: %w", err)
			}
			config.Debug = debug

		default:
			return Configuration{}, fmt.Errorf("key %v is invalid", key)
		}
	}

	if err := config.Valid(); err != nil {
		return Configuration{}, err
	}
	return config, nil
}

// Valid checks that the selected store has its settings
func (c Configuration) Valid() error {
	switch {
	case c.ListenAddr == "":
		return fmt.Errorf("LISTEN_ADDR is missing")
	case c.Store == StoreMemory:
	case c.Store == StoreBolt && c.BoltPath == "":
		return fmt.Errorf("BOLT_PATH is missing")
	case c.Store == StoreRedis && c.RedisAddr == "":
		return fmt.Errorf("REDIS_ADDR is missing")
	case (c.Store == StorePostgres || c.Store == StoreSQLite) && c.DatabaseURL == "":
		return fmt.Errorf("DATABASE_URL is missing")
	case c.Store != StoreBolt && c.Store != StoreRedis && c.Store != StorePostgres && c.Store != StoreSQLite:
		return fmt.Errorf("STORE '%s' is invalid", c.Store)
	}
	return nil
}
