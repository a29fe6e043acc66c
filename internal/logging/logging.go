package logging

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/kiralabs/kira/internal/config"
)

// New creates a zerolog logger writing to the configured log file, and a
// cleanup func to flush and close it. With no log file configured it returns
// a no-op logger: the TUI occupies the terminal, so there is no console sink.
func New(cfg *config.Config) (zerolog.Logger, func(), error) {
	if cfg.LogFile == "" {
		return zerolog.Nop(), func() {}, nil
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}

	f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return zerolog.Nop(), func() {}, fmt.Errorf("open log file: %w", err)
	}

	logger := zerolog.New(f).
		Level(level).
		With().
		Timestamp().
		Logger()

	return logger, func() { f.Close() }, nil //nolint:errcheck // best-effort close
}
