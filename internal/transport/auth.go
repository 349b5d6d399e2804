package transport

import (
	"net/http"
	"strings"
)

// Authenticator applies authentication to HTTP requests.
type Authenticator interface {
	Apply(req *http.Request, token string)
}

// NoAuth implements no authentication.
type NoAuth struct{}

// Apply implements the Authenticator interface for NoAuth.
func (a *NoAuth) Apply(_ *http.Request, _ string) {}

// BearerAuth implements Bearer token authentication.
type BearerAuth struct{}

// Apply implements the Authenticator interface for BearerAuth.
func (a *BearerAuth) Apply(req *http.Request, token string) {
	req.Header.Set("Authorization", "Bearer "+token)
}

// HeaderAuth implements custom header authentication.
type HeaderAuth struct {
	Header string
}

// Apply implements the Authenticator interface for HeaderAuth.
func (a *HeaderAuth) Apply(req *http.Request, token string) {
	req.Header.Set(a.Header, token)
}

// QueryAuth implements token as query parameter authentication.
type QueryAuth struct {
	Param string
}

// Apply implements the Authenticator interface for QueryAuth.
func (a *QueryAuth) Apply(req *http.Request, token string) {
	if req.URL == nil {
		return
	}
	query := req.URL.Query()
	query.Set(a.Param, token)
	req.URL.RawQuery = query.Encode()
}

// AuthFor picks an authenticator from a config value: "" or "bearer" for a
// bearer token, "query:<param>" for a query parameter, anything else is
// used as a header name.
func AuthFor(spec string) Authenticator {
	switch {
	case spec == "" || strings.EqualFold(spec, "bearer"):
		return &BearerAuth{}
	case strings.EqualFold(spec, "none"):
		return &NoAuth{}
	case strings.HasPrefix(spec, "query:"):
		return &QueryAuth{Param: strings.TrimPrefix(spec, "query:")}
	default:
		return &HeaderAuth{Header: spec}
	}
}
