package handlers

import (
	"net/http"

	"github.com/agentstation/quotebook/internal/server/response"
)

// HandleSync handles POST /sync. The report is returned on success and
// also posted to the status board by the sync hook.
func (h *Handlers) HandleSync(w http.ResponseWriter, r *http.Request) {
	report, err := h.client.Sync(r.Context())
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}
	response.OK(w, report)
}

// HandlePush handles POST /push. The push runs in the background.
func (h *Handlers) HandlePush(w http.ResponseWriter, r *http.Request) {
	h.client.PushQuotes(r.Context())
	response.JSON(w, http.StatusAccepted, response.Success(map[string]int{
		"queued": len(h.client.Quotes()),
	}))
}
