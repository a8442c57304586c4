package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"quotedesk/go_backend/internal/domain/quotation"
)

type autofillRequest struct {
	Prompt   string             `json:"prompt"`
	Document quotation.Document `json:"document"`
}

type autofillError struct {
	Error  string `json:"error"`
	Prompt string `json:"prompt"`
}

// Autofill asks the language model for a partial record and merges it into
// the posted document field by field. On any failure the document comes back
// untouched and the prompt is echoed so the client can retry.
func (h *Handlers) Autofill(w http.ResponseWriter, r *http.Request) {
	if !h.autofillGate.tryAcquire() {
		http.Error(w, "an autofill request is already running", http.StatusConflict)
		return
	}
	defer h.autofillGate.release()

	var req autofillRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Prompt) == "" {
		http.Error(w, "prompt is required", http.StatusBadRequest)
		return
	}
	if h.AI.APIKey == "" {
		http.Error(w, "autofill is not configured", http.StatusServiceUnavailable)
		return
	}

	fill, err := h.AI.Fill(r.Context(), req.Prompt)
	if err != nil {
		log.Printf("autofill: %v", err)
		writeJSON(w, http.StatusBadGateway, autofillError{
			Error:  "autofill failed, try again",
			Prompt: req.Prompt,
		})
		return
	}

	doc := req.Document
	doc.NormalizeWidths()
	fill.Apply(&doc)

	writeJSON(w, http.StatusOK, doc)
}
