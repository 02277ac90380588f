package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/tatianab/treasure-hunt/internal/models"
)

// Config holds the application configuration.
type Config struct {
	WorldFile   string        `env:"TREASURE_HUNT_WORLD"`
	Pace        time.Duration `env:"TREASURE_HUNT_PACE"         envDefault:"1s"`
	LogLevel    string        `env:"TREASURE_HUNT_LOG_LEVEL"    envDefault:"warn"`
	LogFile     string        `env:"TREASURE_HUNT_LOG_FILE"     envDefault:"stderr"`
	GeminiModel string        `env:"TREASURE_HUNT_GEMINI_MODEL" envDefault:"gemini-2.5-flash"`

	GeminiAPIKey string `env:"GEMINI_API_KEY"`
}

// LoadConfig loads the configuration from environment variables.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if cfg.Pace < 0 {
		return nil, fmt.Errorf("TREASURE_HUNT_PACE must not be negative, got %s", cfg.Pace)
	}
	return &cfg, nil
}

// RequireGemini reports an error unless a Gemini API key is configured.
func (c *Config) RequireGemini() error {
	if c.GeminiAPIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable is not set")
	}
	return nil
}

// World loads the configured world file, or the built-in hunt if none is set.
func (c *Config) World() (*models.World, error) {
	if c.WorldFile == "" {
		return models.DefaultWorld(), nil
	}
	return models.LoadWorld(c.WorldFile)
}
