// Package logging builds the hclog loggers used by the binvid command.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"
)

// Environment variables read by Resolve.
const (
	EnvLogLevel = "BINVID_LOG_LEVEL"
	EnvJSONLog  = "BINVID_JSON_LOG"
	EnvLogPath  = "BINVID_LOG_PATH"
)

// LinePrefix marks every non-JSON log line.
const LinePrefix = "🎞️ "

// Config is the resolved logger configuration.
type Config struct {
	Level  string
	Source string // where Level came from, for the startup debug line
	JSON   bool
	Path   string // empty means stderr
}

// Resolve picks the log level from the CLI value, then BINVID_LOG_LEVEL,
// then fallback. A level of "json" or "json:<level>" selects JSON output.
func Resolve(cliLevel, fallback string) Config {
	cfg := Config{Level: fallback, Source: "default"}
	switch {
	case cliLevel != "":
		cfg.Level, cfg.Source = cliLevel, "CLI --log-level"
	case os.Getenv(EnvLogLevel) != "":
		cfg.Level, cfg.Source = os.Getenv(EnvLogLevel), EnvLogLevel
	}

	if strings.HasPrefix(strings.ToLower(cfg.Level), "json") {
		cfg.JSON = true
		if _, level, ok := strings.Cut(cfg.Level, ":"); ok && level != "" {
			cfg.Level = level
		} else {
			cfg.Level = "info"
		}
	}
	if os.Getenv(EnvJSONLog) == "1" {
		cfg.JSON = true
	}
	cfg.Path = os.Getenv(EnvLogPath)
	return cfg
}

// New creates the logger described by cfg. If output is nil it writes to
// cfg.Path, or stderr when no path is set or the file cannot be opened.
func New(name string, cfg Config, output io.Writer) hclog.Logger {
	if output == nil {
		output = os.Stderr
		if cfg.Path != "" {
			if file, err := os.OpenFile(cfg.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644); err == nil {
				output = file
			}
		}
	}

	if !cfg.JSON {
		output = NewPrefixWriter(LinePrefix, output)
	}

	return hclog.New(&hclog.LoggerOptions{
		Name:       name,
		Level:      hclog.LevelFromString(cfg.Level),
		JSONFormat: cfg.JSON,
		Output:     output,
		TimeFormat: "2006-01-02T15:04:05Z", // UTC ISO format
		TimeFn: func() time.Time {
			return time.Now().UTC()
		},
	})
}

// NewLogger creates a logger at level, honoring BINVID_JSON_LOG.
func NewLogger(name string, level string, output io.Writer) hclog.Logger {
	return New(name, Resolve(level, "info"), output)
}
