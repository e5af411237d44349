package config

import (
	"os"
	"strconv"

	"gopower/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Database   DatabaseConfig
	Server     ServerConfig
	Simulation SimulationConfig
}

// DatabaseConfig holds database connection settings. URL may be empty, in
// which case the server runs with the in-memory repository.
type DatabaseConfig struct {
	URL string
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port string
}

// SimulationConfig holds sweep defaults
type SimulationConfig struct {
	DefaultTrials int
	DefaultSeed   int64
	MaxParallel   int
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Database:   loadDatabaseConfig(),
		Server:     loadServerConfig(),
		Simulation: loadSimulationConfig(),
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return config, nil
}

func loadDatabaseConfig() DatabaseConfig {
	return DatabaseConfig{
		URL: os.Getenv("DATABASE_URL"),
	}
}

func loadServerConfig() ServerConfig {
	return ServerConfig{
		Port: getEnvOrDefault("PORT", "8080"),
	}
}

func loadSimulationConfig() SimulationConfig {
	return SimulationConfig{
		DefaultTrials: getEnvIntOrDefault("POWER_TRIALS", 1000),
		DefaultSeed:   int64(getEnvIntOrDefault("POWER_SEED", 42)),
		MaxParallel:   getEnvIntOrDefault("POWER_MAX_PARALLEL", 4),
	}
}

func validateConfig(config *Config) error {
	if config.Simulation.DefaultTrials < 1 {
		return errors.ConfigInvalid("POWER_TRIALS must be at least 1")
	}
	if config.Simulation.MaxParallel < 1 {
		return errors.ConfigInvalid("POWER_MAX_PARALLEL must be at least 1")
	}
	if config.Server.Port == "" {
		return errors.ConfigInvalid("PORT cannot be empty")
	}
	return nil
}

func getEnvOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvIntOrDefault(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}
