package server

import (
	"time"

	"github.com/agentstation/quotebook/pkg/constants"
)

// Config holds server configuration.
type Config struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string

	// CORS settings
	CORSOrigins []string

	// Token enables auth on mutating endpoints when set.
	Token      string
	AuthHeader string

	// Performance settings
	RateLimit int // Requests per minute per IP (0 to disable)
	CacheTTL  time.Duration

	// HTTP timeouts
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration

	// Version is reported by /healthz.
	Version string
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Addr:         constants.DefaultServeAddr,
		CORSOrigins:  []string{"*"},
		AuthHeader:   "X-API-Key",
		RateLimit:    300,
		CacheTTL:     constants.ResponseCacheTTL,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 0, // streaming endpoints stay open
		IdleTimeout:  120 * time.Second,
		Version:      "dev",
	}
}
