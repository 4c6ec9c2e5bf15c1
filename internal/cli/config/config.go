package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

// Config represents the pgexpr CLI configuration
type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
}

// DatabaseConfig represents database configuration
type DatabaseConfig struct {
	URL string `mapstructure:"url"`
}

// Load loads the configuration from pgexpr.yml or pgexpr.yaml
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("pgexpr")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Enable environment variable support
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found - use defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}

// GetDatabaseURL returns the database URL from config or environment
func GetDatabaseURL() string {
	// First check environment variable
	if url := os.Getenv("DATABASE_URL"); url != "" {
		return url
	}

	cfg, err := Load()
	if err != nil {
		return ""
	}

	return cfg.Database.URL
}
