package config

import (
	"fmt"

	"github.com/caarlos0/env/v10"
)

// Config holds everything read from the environment at startup.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	Debug       bool   `env:"DEBUG" envDefault:"false"`

	HTTP HTTPServer
}

// HTTPServer is the listen configuration for the API server.
type HTTPServer struct {
	Host string `env:"HTTP_HOST" envDefault:"0.0.0.0"`
	Port string `env:"HTTP_PORT" envDefault:"8080"`
}

// Addr returns the host:port the server binds to.
func (h HTTPServer) Addr() string {
	return h.Host + ":" + h.Port
}

// Load parses configuration from environment variables.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}
