package config

import (
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
)

// loadFromEnv overrides configuration fields that carry an env tag with the
// matching environment variable, when it is set.
func loadFromEnv(config *Config) error {
	if err := cleanenv.ReadEnv(config); err != nil {
		return fmt.Errorf("read environment: %w", err)
	}
	return nil
}

// Describe returns a human readable list of the environment variables understood by Config.
func Describe() (string, error) {
	header := "Environment variables:"
	return cleanenv.GetDescription(&Config{}, &header)
}
