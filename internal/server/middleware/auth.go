package middleware

import (
	"crypto/subtle"
	"net/http"
	"slices"
	"strings"

	"github.com/rs/zerolog"

	"github.com/agentstation/quotebook/internal/server/response"
)

// AuthConfig holds authentication configuration.
type AuthConfig struct {
	Enabled    bool
	Token      string
	HeaderName string

	// PublicPaths never require a token.
	PublicPaths []string

	// PublicReads lets GET and HEAD requests through without a token.
	PublicReads bool
}

// DefaultAuthConfig returns default authentication configuration.
func DefaultAuthConfig() AuthConfig {
	return AuthConfig{
		HeaderName:  "X-API-Key",
		PublicPaths: []string{"/healthz"},
		PublicReads: true,
	}
}

// Auth rejects requests without the configured token.
func Auth(config AuthConfig, logger *zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !config.Enabled || slices.Contains(config.PublicPaths, r.URL.Path) ||
				(config.PublicReads && (r.Method == http.MethodGet || r.Method == http.MethodHead)) {
				next.ServeHTTP(w, r)
				return
			}

			token := extractToken(r, config.HeaderName)
			if token == "" || subtle.ConstantTimeCompare([]byte(token), []byte(config.Token)) != 1 {
				logger.Warn().
					Str("path", r.URL.Path).
					Str("remote_addr", r.RemoteAddr).
					Bool("token_provided", token != "").
					Msg("Authentication failed")

				response.Unauthorized(w, "Invalid or missing token",
					"Provide a valid token in the "+config.HeaderName+" or Authorization header")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// extractToken reads the custom header, then a bearer Authorization header.
func extractToken(r *http.Request, headerName string) string {
	if headerName != "" {
		if token := r.Header.Get(headerName); token != "" {
			return token
		}
	}
	auth := r.Header.Get("Authorization")
	if token, ok := strings.CutPrefix(auth, "Bearer "); ok {
		return token
	}
	return auth
}
