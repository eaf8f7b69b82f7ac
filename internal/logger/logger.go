// Package logger builds the zerolog logger shared by the entry points.
package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"philcali.me/inventory/internal/config"
)

const SERVICE_NAME = "inventory"

// New returns a JSON logger in production and a console logger elsewhere.
func New(cfg *config.Config) zerolog.Logger {
	var writer io.Writer = os.Stdout
	if !cfg.IsProduction() {
		writer = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	}
	return NewWithWriter(cfg, writer)
}

func NewWithWriter(cfg *config.Config, writer io.Writer) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Log.Level)
	if err != nil || cfg.Log.Level == "" {
		level = zerolog.InfoLevel
	}
	return zerolog.New(writer).
		Level(level).
		With().
		Timestamp().
		Str("service", SERVICE_NAME).
		Str("environment", cfg.Primary.Env).
		Logger()
}

// Bootstrap is used before configuration is available.
func Bootstrap() zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
}
