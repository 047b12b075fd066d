package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/iamasit07/connectfour/internal/domain"
)

type Config struct {
	Port            string        `env:"PORT" envDefault:"8080"`
	Rows            int           `env:"CONNECTFOUR_ROWS" envDefault:"6"`
	Columns         int           `env:"CONNECTFOUR_COLUMNS" envDefault:"7"`
	ToWin           int           `env:"CONNECTFOUR_TO_WIN" envDefault:"4"`
	MaxRows         int           `env:"CONNECTFOUR_MAX_ROWS" envDefault:"64"`
	MaxColumns      int           `env:"CONNECTFOUR_MAX_COLUMNS" envDefault:"64"`
	EmptyMarker     int           `env:"CONNECTFOUR_EMPTY_MARKER" envDefault:"0"`
	FinishedTTL     time.Duration `env:"CONNECTFOUR_FINISHED_TTL" envDefault:"1h"`
	IdleTTL         time.Duration `env:"CONNECTFOUR_IDLE_TTL" envDefault:"24h"`
	CleanupInterval time.Duration `env:"CONNECTFOUR_CLEANUP_INTERVAL" envDefault:"10m"`
	FrontendURL     string        `env:"FRONTEND_URL" envDefault:"http://localhost:5173"`
	ExtraOrigins    []string      `env:"ALLOWED_ORIGINS" envSeparator:","`
	OTelEndpoint    string        `env:"CONNECTFOUR_OTEL_ENDPOINT"`
	OTelEnabled     bool          `env:"CONNECTFOUR_OTEL_ENABLED" envDefault:"true"`

	// AllowedOrigins is FrontendURL followed by the trimmed ALLOWED_ORIGINS values.
	AllowedOrigins []string
}

// LoadEnvFiles loads a .env file from the working directory or its parent.
func LoadEnvFiles() {
	if err := godotenv.Load(); err != nil {
		if err := godotenv.Load("../.env"); err != nil {
			log.Println("No .env file found, using environment variables")
		}
	}
}

func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cfg.AllowedOrigins = []string{cfg.FrontendURL}
	for _, origin := range cfg.ExtraOrigins {
		trimmed := strings.TrimSpace(origin)
		if trimmed != "" {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, trimmed)
		}
	}

	return cfg, nil
}

// Validate checks the game settings. Commands that override them from flags
// call it again after parsing.
func (c *Config) Validate() error {
	if c.MaxRows <= 0 || c.MaxColumns <= 0 {
		return fmt.Errorf("maximum board size must be at least 1x1, got %dx%d", c.MaxRows, c.MaxColumns)
	}
	if c.Rows <= 0 || c.Columns <= 0 {
		return fmt.Errorf("board must be at least 1x1, got %dx%d", c.Rows, c.Columns)
	}
	if c.Rows > c.MaxRows || c.Columns > c.MaxColumns {
		return fmt.Errorf("board %dx%d exceeds the maximum of %dx%d", c.Rows, c.Columns, c.MaxRows, c.MaxColumns)
	}
	if c.ToWin <= 0 {
		return fmt.Errorf("run length to win must be positive, got %d", c.ToWin)
	}
	if c.EmptyMarker == domain.Player1.Marker(0) || c.EmptyMarker == domain.Player2.Marker(0) {
		return fmt.Errorf("empty marker %d collides with a player marker", c.EmptyMarker)
	}
	return nil
}

func (c *Config) GameOptions() domain.Options {
	return domain.Options{
		Rows:    c.Rows,
		Columns: c.Columns,
		ToWin:   c.ToWin,
	}
}
