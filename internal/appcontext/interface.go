// Package appcontext provides the application context interface shared by
// all commands, so command packages depend on an interface rather than the
// concrete App.
package appcontext

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/quotebook"
	"github.com/agentstation/quotebook/internal/config"
)

// Interface defines what commands need from the application.
// The App struct from cmd/quotebook/app implements it; tests use Mock.
type Interface interface {
	// Client returns the quotebook client, creating it lazily from the
	// configuration on first use.
	Client() (quotebook.Client, error)

	// Config returns the loaded configuration with flags applied.
	Config() *config.Config

	// Logger returns the configured logger instance.
	Logger() *zerolog.Logger

	// OutputFormat returns the configured output format (table, json, yaml).
	OutputFormat() string

	// Version returns the application version string.
	Version() string

	// Commit returns the git commit hash.
	Commit() string

	// Date returns the build date.
	Date() string

	// BuiltBy returns the build system identifier.
	BuiltBy() string
}
