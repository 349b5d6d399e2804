package app

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/agentstation/quotebook/internal/config"
	"github.com/agentstation/quotebook/pkg/logging"
)

// NewLogger creates the application logger and makes it the default.
// Log level precedence (highest to lowest):
//  1. --log-level flag, then LOG_LEVEL or log_level in the config file
//  2. -v/--verbose (debug)
//  3. -q/--quiet (warn)
//  4. info
func NewLogger(cfg *config.Config) zerolog.Logger {
	level := determineLogLevel(cfg)

	logger := logging.NewLoggerFromConfig(&logging.Config{
		Level:     level,
		Format:    cfg.LogFormat,
		Output:    cfg.LogOutput,
		NoColor:   cfg.NoColor,
		AddCaller: level == "debug" || level == "trace",
	})
	logging.SetDefault(logger)
	return logger
}

func determineLogLevel(cfg *config.Config) string {
	if cfg.LogLevel != "" {
		validated := validateLogLevel(cfg.LogLevel)
		if validated != cfg.LogLevel {
			fmt.Fprintf(os.Stderr, "Warning: invalid log level %q, using %q\n", cfg.LogLevel, validated)
		}
		return validated
	}

	if cfg.Verbose && cfg.Quiet {
		fmt.Fprintf(os.Stderr, "Warning: both --verbose and --quiet specified, using --quiet\n")
		return "warn"
	}
	if cfg.Verbose {
		return "debug"
	}
	if cfg.Quiet {
		return "warn"
	}
	return "info"
}

func validateLogLevel(level string) string {
	switch level {
	case "trace", "debug", "info", "warn", "error":
		return level
	}
	return "info"
}
