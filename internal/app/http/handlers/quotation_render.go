package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"quotedesk/go_backend/internal/domain/quotation"
)

// Render turns the posted document into a multi-page PDF. Rendering can take
// seconds for large documents, so a second request while one is in flight is
// rejected with 409.
func (h *Handlers) Render(w http.ResponseWriter, r *http.Request) {
	if !h.renderGate.tryAcquire() {
		http.Error(w, "an export is already running", http.StatusConflict)
		return
	}
	defer h.renderGate.release()

	doc := quotation.Default()
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	doc.NormalizeWidths()
	doc.EnsureItemIDs()

	out, err := h.PDF.Generate(doc)
	if err != nil {
		log.Printf("render: pdf generation failed: %v", err)
		http.Error(w, "pdf generation failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="quotation.pdf"`)
	w.WriteHeader(http.StatusOK)
	w.Write(out)
}
