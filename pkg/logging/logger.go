// Package logging provides structured logging for quotebook using zerolog.
// Console output is used when stderr is a terminal and JSON output otherwise.
//
// Example usage:
//
//	logging.Info().Str("gateway", "http").Msg("Starting sync")
//
//	ctx = logging.WithSyncRun(ctx, runID)
//	logging.FromContext(ctx).Debug().Int("remote", n).Msg("Fetched remote quotes")
package logging

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var (
	mu            sync.RWMutex
	defaultLogger zerolog.Logger

	// Nop logger for discarding output.
	Nop = zerolog.Nop()
)

func init() {
	defaultLogger = newDefaultLogger()
}

func newDefaultLogger() zerolog.Logger {
	var writer io.Writer = os.Stderr
	if isTerminal(os.Stderr) && os.Getenv("LOG_FORMAT") != "json" {
		writer = zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.Kitchen,
			NoColor:    os.Getenv("NO_COLOR") != "",
		}
	}

	level := levelFromEnv()
	zerolog.SetGlobalLevel(level)

	logger := zerolog.New(writer).Level(level).With().Timestamp().Logger()
	if level <= zerolog.DebugLevel {
		logger = logger.With().Caller().Logger()
	}
	return logger
}

// Default returns the default global logger.
func Default() *zerolog.Logger {
	mu.RLock()
	l := defaultLogger
	mu.RUnlock()
	return &l
}

// SetDefault sets the default global logger.
func SetDefault(logger zerolog.Logger) {
	mu.Lock()
	defaultLogger = logger
	mu.Unlock()
	log.Logger = logger
}

// New creates a new logger with the given writer.
func New(w io.Writer) zerolog.Logger {
	return zerolog.New(w).
		Level(zerolog.GlobalLevel()).
		With().
		Timestamp().
		Logger()
}

// NewConsole creates a new console logger for human-readable output.
func NewConsole() zerolog.Logger {
	return New(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.Kitchen,
		NoColor:    os.Getenv("NO_COLOR") != "",
	})
}

// Debug starts a new debug level log event.
func Debug() *zerolog.Event {
	return Default().Debug()
}

// Info starts a new info level log event.
func Info() *zerolog.Event {
	return Default().Info()
}

// Warn starts a new warning level log event.
func Warn() *zerolog.Event {
	return Default().Warn()
}

// Error starts a new error level log event.
func Error() *zerolog.Event {
	return Default().Error()
}

// Err creates a new error log event with the given error.
func Err(err error) *zerolog.Event {
	return Default().Err(err)
}

func isTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func levelFromEnv() zerolog.Level {
	if s := os.Getenv("LOG_LEVEL"); s != "" {
		return parseLevel(s)
	}
	if os.Getenv("DEBUG") != "" {
		return zerolog.DebugLevel
	}
	return zerolog.InfoLevel
}
