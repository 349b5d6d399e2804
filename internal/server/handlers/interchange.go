package handlers

import (
	"bytes"
	"io"
	"net/http"

	"github.com/agentstation/quotebook/internal/server/response"
	"github.com/agentstation/quotebook/pkg/constants"
	"github.com/agentstation/quotebook/pkg/interchange"
)

var contentTypes = map[interchange.Format]string{
	interchange.FormatJSON:     "application/json",
	interchange.FormatYAML:     "application/yaml",
	interchange.FormatMarkdown: "text/markdown; charset=utf-8",
}

// HandleExport handles GET /export?format=json|yaml|markdown.
func (h *Handlers) HandleExport(w http.ResponseWriter, r *http.Request) {
	format, err := interchange.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}

	var buf bytes.Buffer
	if err := h.client.Export(&buf, format); err != nil {
		response.ErrorFromType(w, err)
		return
	}

	name := "quotes" + format.Extension()
	if format == interchange.FormatJSON {
		name = constants.ExportFileName
	}
	w.Header().Set("Content-Type", contentTypes[format])
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
	_, _ = w.Write(buf.Bytes())
}

// HandleImport handles POST /import?format=json|yaml with the document as
// the body.
func (h *Handlers) HandleImport(w http.ResponseWriter, r *http.Request) {
	format, err := interchange.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}

	result, err := h.client.Import(r.Context(), io.LimitReader(r.Body, maxBodySize), format)
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}
	response.OK(w, result)
}
