package transport

import (
	"io"
	"net/http"

	"github.com/agentstation/quotebook/pkg/errors"
	"github.com/agentstation/quotebook/pkg/logging"
)

// maxBodyBytes caps how much of a response body is read.
const maxBodyBytes = 10 << 20

// ReadBody reads and closes a response body. Non-2xx responses become an
// APIError attributed to gateway.
func ReadBody(resp *http.Response, gateway string) ([]byte, error) {
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logging.Warn().Err(err).Str("gateway", gateway).Msg("Failed to close response body")
		}
	}()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, errors.WrapIO("read", "response body", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := errors.NewAPIError(gateway, resp.StatusCode, http.StatusText(resp.StatusCode))
		if resp.Request != nil && resp.Request.URL != nil {
			apiErr.Endpoint = resp.Request.URL.String()
		}
		return nil, apiErr
	}
	return body, nil
}
