package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"github.com/agentstation/quotebook/internal/server/cache"
	"github.com/agentstation/quotebook/internal/server/response"
	"github.com/agentstation/quotebook/pkg/constants"
	"github.com/agentstation/quotebook/pkg/errors"
	"github.com/agentstation/quotebook/pkg/logging"
	"github.com/agentstation/quotebook/pkg/quotes"
)

// maxBodySize bounds request bodies for adds and imports.
const maxBodySize = 1 << 20

// HandleListQuotes handles GET /quotes. An optional category query narrows
// the list; "all" or no category returns every quote. Responses are cached
// until the list changes.
func (h *Handlers) HandleListQuotes(w http.ResponseWriter, r *http.Request) {
	key := cache.Key(r.URL.Path, r.URL.RawQuery)
	if entry, ok := h.cache.Get(key); ok {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("X-Cache", "HIT")
		w.WriteHeader(entry.Status)
		_, _ = w.Write(entry.Body)
		return
	}

	list := h.client.Quotes()
	if category := r.URL.Query().Get("category"); !quotes.IsAll(category) {
		list = quotes.FilterBy(list, category)
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(response.Success(list)); err != nil {
		response.InternalError(w, err)
		return
	}
	h.cache.Set(key, cache.Entry{Status: http.StatusOK, Body: buf.Bytes()})

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Cache", "MISS")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

// HandleAddQuote handles POST /quotes with a {"text","category"} body.
func (h *Handlers) HandleAddQuote(w http.ResponseWriter, r *http.Request) {
	var req quotes.Quote
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodySize)).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", err.Error())
		return
	}

	q, err := h.client.Add(r.Context(), req.Text, req.Category)
	if err != nil {
		if errors.IsValidationError(err) {
			h.board.PostMessage(constants.MsgMissingFields, constants.StatusDisplayDuration)
			response.BadRequest(w, constants.MsgMissingFields, err.Error())
			return
		}
		logging.FromContext(r.Context()).Error().Err(err).Msg("Failed to add quote")
		response.ErrorFromType(w, err)
		return
	}
	response.Created(w, q)
}

// HandleRandomQuote handles GET /quotes/random. The category query
// overrides the persisted filter for this request only.
func (h *Handlers) HandleRandomQuote(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	if category == "" {
		q, err := h.client.Random(r.Context())
		if err != nil {
			response.ErrorFromType(w, err)
			return
		}
		response.OK(w, q)
		return
	}

	q, err := h.client.RandomIn(r.Context(), category)
	if errors.Is(err, errors.ErrNoQuotes) {
		response.NotFound(w, constants.MsgNoQuotes, "")
		return
	}
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}
	response.OK(w, q)
}

// HandleCategories handles GET /categories.
func (h *Handlers) HandleCategories(w http.ResponseWriter, _ *http.Request) {
	response.OK(w, map[string]any{
		"categories": h.client.Categories(),
		"filter":     h.client.Filter(),
	})
}

// HandleSetFilter handles PUT /filter with a {"category"} body.
func (h *Handlers) HandleSetFilter(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Category string `json:"category"`
	}
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodySize)).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", err.Error())
		return
	}
	if err := h.client.SetFilter(r.Context(), req.Category); err != nil {
		response.ErrorFromType(w, err)
		return
	}
	response.OK(w, map[string]string{"filter": h.client.Filter()})
}
