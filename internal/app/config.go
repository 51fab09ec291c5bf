package app

import (
	"errors"
	"fmt"
	"time"

	"github.com/vk/stepconf/internal/emit"
	"github.com/vk/stepconf/internal/fsutil"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	Paths   []string // files and directories to load
	Include string   // glob applied inside directories

	LogFormat string
	LogLevel  string

	// Format is the export format.
	Format emit.Format
	// Debounce is how long Watch waits for file events to settle.
	Debounce time.Duration
}

var (
	logLevels  = []string{"debug", "info", "warn", "error"}
	logFormats = []string{"text", "json"}
)

// NewConfig validates cfg and fills in defaults.
func NewConfig(cfg Config) (*Config, error) {
	if len(cfg.Paths) == 0 {
		return nil, errors.New("at least one path is required")
	}
	if cfg.Include == "" {
		cfg.Include = fsutil.DefaultInclude
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if !oneOf(cfg.LogLevel, logLevels) {
		return nil, fmt.Errorf("invalid log level '%s', expected one of: %v", cfg.LogLevel, logLevels)
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = "text"
	}
	if !oneOf(cfg.LogFormat, logFormats) {
		return nil, fmt.Errorf("invalid log format '%s', expected one of: %v", cfg.LogFormat, logFormats)
	}
	if cfg.Format == "" {
		cfg.Format = emit.FormatJSON
	}
	if cfg.Debounce <= 0 {
		cfg.Debounce = 300 * time.Millisecond
	}
	return &cfg, nil
}

func oneOf(s string, allowed []string) bool {
	for _, a := range allowed {
		if s == a {
			return true
		}
	}
	return false
}
