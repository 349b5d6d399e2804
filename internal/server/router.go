package server

import (
	"net/http"

	"github.com/agentstation/quotebook/internal/server/handlers"
	"github.com/agentstation/quotebook/internal/server/middleware"
)

// setupRouter creates the HTTP handler with routes and middleware.
func (s *Server) setupRouter() http.Handler {
	mux := http.NewServeMux()

	h := handlers.New(
		s.client,
		s.board,
		s.cache,
		s.wsHub,
		s.sseBroadcaster,
		s.upgrader,
		s.logger,
		s.config.Version,
	)
	s.registerRoutes(mux, h)

	return s.applyMiddleware(mux)
}

// registerRoutes registers all HTTP routes.
func (s *Server) registerRoutes(mux *http.ServeMux, h *handlers.Handlers) {
	mux.HandleFunc("GET /healthz", h.HandleHealth)
	mux.HandleFunc("GET /status", h.HandleStatus)

	mux.HandleFunc("GET /quotes", h.HandleListQuotes)
	mux.HandleFunc("POST /quotes", h.HandleAddQuote)
	mux.HandleFunc("GET /quotes/random", h.HandleRandomQuote)
	mux.HandleFunc("GET /categories", h.HandleCategories)
	mux.HandleFunc("PUT /filter", h.HandleSetFilter)

	mux.HandleFunc("POST /sync", h.HandleSync)
	mux.HandleFunc("POST /push", h.HandlePush)

	mux.HandleFunc("GET /export", h.HandleExport)
	mux.HandleFunc("POST /import", h.HandleImport)

	mux.HandleFunc("GET /ws", h.HandleWebSocket)
	mux.HandleFunc("GET /events", h.HandleSSE)
}

// applyMiddleware wraps the mux, outermost first.
func (s *Server) applyMiddleware(handler http.Handler) http.Handler {
	auth := middleware.DefaultAuthConfig()
	auth.Enabled = s.config.Token != ""
	auth.Token = s.config.Token
	if s.config.AuthHeader != "" {
		auth.HeaderName = s.config.AuthHeader
	}

	cors := middleware.DefaultCORSConfig()
	if len(s.config.CORSOrigins) > 0 {
		cors.AllowedOrigins = s.config.CORSOrigins
	}

	return middleware.Chain(
		middleware.Recovery(s.logger),
		middleware.Logger(s.logger),
		middleware.CORS(cors),
		middleware.RateLimit(middleware.NewRateLimiter(s.config.RateLimit, s.logger)),
		middleware.Auth(auth, s.logger),
	)(handler)
}
