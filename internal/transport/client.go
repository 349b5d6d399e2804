// Package transport provides the HTTP client used by remote quote gateways.
package transport

import (
	"bytes"
	"context"
	"net/http"
	"time"

	"github.com/agentstation/quotebook/pkg/constants"
	"github.com/agentstation/quotebook/pkg/errors"
)

// DefaultHTTPTimeout is the default timeout for HTTP requests.
var DefaultHTTPTimeout = constants.DefaultHTTPTimeout

// Client provides HTTP client functionality with optional authentication.
type Client struct {
	http    *http.Client
	auth    Authenticator
	token   string
	headers map[string]string
}

// New creates a new transport client. A nil authenticator applies none.
func New(auth Authenticator, token string) *Client {
	if auth == nil {
		auth = &NoAuth{}
	}
	return &Client{
		http:    &http.Client{Timeout: DefaultHTTPTimeout},
		auth:    auth,
		token:   token,
		headers: make(map[string]string),
	}
}

// WithTimeout sets the per-request timeout of the underlying client.
func (c *Client) WithTimeout(d time.Duration) *Client {
	if d > 0 {
		c.http.Timeout = d
	}
	return c
}

// WithHeader adds a header sent with every request.
func (c *Client) WithHeader(key, value string) *Client {
	c.headers[key] = value
	return c
}

// Do performs an HTTP request with authentication and common headers applied.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	if c.token != "" {
		c.auth.Apply(req, c.token)
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}

	req.Header.Set("Accept", "application/json")
	if req.Method == http.MethodPost || req.Method == http.MethodPut || req.Method == http.MethodPatch {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.http.Do(req)
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.WrapResource("create", "request", "GET "+url, err)
	}
	return c.Do(req)
}

// Post performs a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, url string, body []byte) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, errors.WrapResource("create", "request", "POST "+url, err)
	}
	return c.Do(req)
}
