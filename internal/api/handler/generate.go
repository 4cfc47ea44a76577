package handler

import (
	"net/http"
	"strings"

	"github.com/weirlive/panw-object/internal/batch"
	"github.com/weirlive/panw-object/internal/domain"
	"github.com/weirlive/panw-object/internal/service"
	"github.com/weirlive/panw-object/internal/synthesizer"
)

// GenerateRequest is the body of POST /api/v1/generate. Entries may be given
// as a list, as pasted text, or both; text lines are appended to the list.
type GenerateRequest struct {
	domain.Request
	Text string `json:"text,omitempty"`
}

// GenerateResponse is the body returned by POST /api/v1/generate.
type GenerateResponse struct {
	ID         string         `json:"id"`
	Outcome    domain.Outcome `json:"outcome"`
	Directives int            `json:"directives"`
	Skipped    int            `json:"skipped"`
	Checksum   string         `json:"checksum"`
	Lines      []string       `json:"lines"`
	Text       string         `json:"text"`
}

// ClassifyRequest is the body of POST /api/v1/classify.
type ClassifyRequest struct {
	Zone    string   `json:"zone,omitempty"`
	Entries []string `json:"entries,omitempty"`
	Text    string   `json:"text,omitempty"`
}

// ClassifyResponse is the body returned by POST /api/v1/classify.
type ClassifyResponse struct {
	Entries   []service.Classification `json:"entries"`
	GroupName string                   `json:"group_name,omitempty"`
}

// PolicyResponse is the body returned by GET /api/v1/policy.
type PolicyResponse struct {
	Policy synthesizer.Policy `json:"policy"`
	Stats  service.Stats      `json:"stats"`
}

// GenerateHandler handles the generation endpoints.
type GenerateHandler struct {
	generator *service.Generator
}

// NewGenerateHandler creates a new GenerateHandler.
func NewGenerateHandler(generator *service.Generator) *GenerateHandler {
	return &GenerateHandler{generator: generator}
}

// Generate synthesizes directives for one request.
func (h *GenerateHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var body GenerateRequest
	if err := decodeJSON(w, r, &body); err != nil {
		handleError(w, err)
		return
	}

	req := body.Request
	if body.Text != "" {
		req.Entries = append(req.Entries, batch.SplitEntries(body.Text)...)
	}

	gen, err := h.generator.Generate(r.Context(), req)
	if err != nil {
		handleError(w, err)
		return
	}

	SetETagHeader(w, gen.Checksum)
	w.Header().Set("X-Generation-ID", gen.ID)
	if CheckIfNoneMatch(r, gen.Checksum) {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	text := gen.Result.Text()
	if strings.EqualFold(r.URL.Query().Get("format"), "text") {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(text + "\n"))
		return
	}

	respondJSON(w, http.StatusOK, &GenerateResponse{
		ID:         gen.ID,
		Outcome:    gen.Outcome,
		Directives: gen.Directives,
		Skipped:    gen.Skipped,
		Checksum:   gen.Checksum,
		Lines:      gen.Result.Lines,
		Text:       text,
	})
}

// Classify previews the type and name of each entry.
func (h *GenerateHandler) Classify(w http.ResponseWriter, r *http.Request) {
	var body ClassifyRequest
	if err := decodeJSON(w, r, &body); err != nil {
		handleError(w, err)
		return
	}

	entries := append(body.Entries, batch.SplitEntries(body.Text)...)
	resp := &ClassifyResponse{Entries: h.generator.Classify(body.Zone, entries)}
	if zone := strings.TrimSpace(body.Zone); zone != "" {
		resp.GroupName = h.generator.GroupName(zone, r.URL.Query().Get("group_suffix"))
	}

	respondJSON(w, http.StatusOK, resp)
}

// Policy returns the active naming policy.
func (h *GenerateHandler) Policy(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, &PolicyResponse{
		Policy: h.generator.Policy(),
		Stats:  h.generator.Stats(),
	})
}
