package config

import (
	"io"
	"time"

	"github.com/rs/zerolog"
)

// NewLogger builds the root logger. Unknown levels fall back to info.
func NewLogger(cfg LoggingConfig, w io.Writer) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}

	if cfg.Format == "console" {
		output := zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
		return zerolog.New(output).Level(level).With().Timestamp().Logger()
	}

	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}
