package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/quotebook/pkg/logging"
)

var ok = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func TestChainOrder(t *testing.T) {
	var order []string
	mw := func(name string) func(http.Handler) http.Handler {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	h := Chain(mw("a"), mw("b"), mw("c"))(ok)
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, []string{"a", "b", "c"}, order)
}

func TestLoggerAddsRequestID(t *testing.T) {
	tl := logging.NewTestLogger(t)

	var seen string
	h := Logger(tl.Logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = logging.RequestID(r.Context())
		w.WriteHeader(http.StatusTeapot)
	}))

	t.Run("generated", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/quotes", nil))
		assert.NotEmpty(t, seen)
		assert.Equal(t, seen, rec.Header().Get(RequestIDHeader))
		assert.True(t, tl.ContainsAll(`"status":418`, `"path":"/quotes"`, `"request_id":"`+seen+`"`))
	})

	t.Run("propagated", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(RequestIDHeader, "abc")
		h.ServeHTTP(httptest.NewRecorder(), req)
		assert.Equal(t, "abc", seen)
	})
}

func TestRecovery(t *testing.T) {
	tl := logging.NewTestLogger(t)
	h := Recovery(tl.Logger)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "INTERNAL_ERROR")
	assert.True(t, tl.Contains("Panic recovered"))
}

func TestCORS(t *testing.T) {
	t.Run("wildcard", func(t *testing.T) {
		rec := httptest.NewRecorder()
		CORS(DefaultCORSConfig())(ok).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("allow list", func(t *testing.T) {
		cfg := DefaultCORSConfig()
		cfg.AllowedOrigins = []string{"http://a.test"}

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Origin", "http://a.test")
		rec := httptest.NewRecorder()
		CORS(cfg)(ok).ServeHTTP(rec, req)
		assert.Equal(t, "http://a.test", rec.Header().Get("Access-Control-Allow-Origin"))

		req.Header.Set("Origin", "http://b.test")
		rec = httptest.NewRecorder()
		CORS(cfg)(ok).ServeHTTP(rec, req)
		assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("preflight", func(t *testing.T) {
		called := false
		h := CORS(DefaultCORSConfig())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { called = true }))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/quotes", nil))
		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.False(t, called)
	})
}

func TestAuth(t *testing.T) {
	cfg := DefaultAuthConfig()
	cfg.Enabled = true
	cfg.Token = "secret"
	h := Auth(cfg, logging.NewNopLogger())(ok)

	tests := []struct {
		name   string
		method string
		path   string
		header map[string]string
		want   int
	}{
		{"public read", http.MethodGet, "/quotes", nil, http.StatusOK},
		{"public path", http.MethodPost, "/healthz", nil, http.StatusOK},
		{"missing token", http.MethodPost, "/quotes", nil, http.StatusUnauthorized},
		{"wrong token", http.MethodPost, "/quotes", map[string]string{"X-API-Key": "nope"}, http.StatusUnauthorized},
		{"header token", http.MethodPost, "/quotes", map[string]string{"X-API-Key": "secret"}, http.StatusOK},
		{"bearer token", http.MethodPost, "/sync", map[string]string{"Authorization": "Bearer secret"}, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			for k, v := range tt.header {
				req.Header.Set(k, v)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			assert.Equal(t, tt.want, rec.Code)
		})
	}

	t.Run("disabled", func(t *testing.T) {
		rec := httptest.NewRecorder()
		Auth(DefaultAuthConfig(), logging.NewNopLogger())(ok).
			ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/quotes", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestRateLimit(t *testing.T) {
	rl := NewRateLimiterWindow(2, 50*time.Millisecond, logging.NewNopLogger())
	h := RateLimit(rl)(ok)

	do := func(ip string) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = ip + ":1234"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, do("10.0.0.1"))
	assert.Equal(t, http.StatusOK, do("10.0.0.1"))
	assert.Equal(t, http.StatusTooManyRequests, do("10.0.0.1"))
	assert.Equal(t, http.StatusOK, do("10.0.0.2"))

	require.Eventually(t, func() bool { return rl.Allow("10.0.0.1") }, time.Second, 10*time.Millisecond)

	assert.True(t, NewRateLimiter(0, logging.NewNopLogger()).Allow("x"))
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.0.2.1:5555"
	assert.Equal(t, "192.0.2.1", clientIP(req))

	req.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")
	assert.Equal(t, "203.0.113.9", clientIP(req))
}
