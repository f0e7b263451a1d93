package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	HTTPAddr string     `env:"HTTP_ADDR" envDefault:":8080"`
	DBPath   string     `env:"DB_PATH" envDefault:"data/cardtable.db"`
	LogLevel slog.Level `env:"LOG_LEVEL" envDefault:"INFO"`
	SPADir   string     `env:"SPA_DIR" envDefault:""`

	// SessionTTL evicts sessions idle longer than this; 0 keeps every
	// session for the life of the process.
	SessionTTL    time.Duration `env:"SESSION_TTL" envDefault:"0"`
	SweepInterval time.Duration `env:"SWEEP_INTERVAL" envDefault:"1m"`

	// ShuffleDeals randomizes deal order. Off by default: the standard
	// table rules deal the catalog in order.
	ShuffleDeals bool `env:"SHUFFLE_DEALS" envDefault:"false"`
}

func Load() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	return &cfg, nil
}
