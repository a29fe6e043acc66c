package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds application configuration, read from the environment.
type Config struct {
	// APIURL is the KIRA API base URL. The default matches the backend's
	// development listener.
	APIURL string `env:"KIRA_API_URL" envDefault:"http://localhost:8001"`

	// Token overrides the persisted token when set. Never written back.
	Token string `env:"KIRA_TOKEN"`

	// DataDir holds the persisted token files. Defaults to ~/.kira.
	DataDir string `env:"KIRA_DATA_DIR"`

	// LogFile enables debug logging to a file. Empty disables logging
	// entirely; the TUI owns the terminal, so stderr is not an option.
	LogFile  string `env:"KIRA_LOG_FILE"`
	LogLevel string `env:"KIRA_LOG_LEVEL" envDefault:"info"`

	// HTTPTimeout bounds every API request.
	HTTPTimeout time.Duration `env:"KIRA_HTTP_TIMEOUT" envDefault:"30s"`

	// LookupTimeout bounds a single identity-lookup attempt during session
	// rehydration, so a hung server cannot wedge startup.
	LookupTimeout time.Duration `env:"KIRA_LOOKUP_TIMEOUT" envDefault:"10s"`
}

// New reads configuration from the environment and fills in defaults that
// depend on the running user.
func New() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	if cfg.DataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home dir: %w", err)
		}
		cfg.DataDir = filepath.Join(home, ".kira")
	}
	return cfg, nil
}
