package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"quotedesk/go_backend/internal/domain/quotation"
	"quotedesk/go_backend/internal/infra/draftstore"
)

// SaveDraft queues the posted document for debounced, best-effort
// persistence. It answers 202 immediately; the actual write happens after
// the key goes quiet.
func (h *Handlers) SaveDraft(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")

	var doc quotation.Document
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	doc.NormalizeWidths()
	h.Saver.Queue(key, doc)

	status := "queued"
	if h.Saver.Disabled(key) {
		status = "disabled"
	}
	writeJSON(w, http.StatusAccepted, map[string]string{"status": status})
}

func (h *Handlers) LoadDraft(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")

	// Flush any pending write so the client reads what it last queued.
	h.Saver.Flush(key)

	payload, err := h.Store.Load(r.Context(), key)
	if errors.Is(err, draftstore.ErrNotFound) {
		http.Error(w, "draft not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "draft load failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(payload)
}

func (h *Handlers) DeleteDraft(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	if err := h.Store.Delete(r.Context(), key); err != nil {
		http.Error(w, "draft delete failed", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
