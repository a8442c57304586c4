package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"quotedesk/go_backend/internal/domain/quotation"
)

// Export writes the document back as the flat, versionless interchange
// record, indented for human readability.
func (h *Handlers) Export(w http.ResponseWriter, r *http.Request) {
	var doc quotation.Document
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	doc.NormalizeWidths()

	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		http.Error(w, "export failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="quotation.json"`)
	w.WriteHeader(http.StatusOK)
	w.Write(out)
}

// Import validates an uploaded interchange record and merges it over the
// built-in default document. The only shape check is that an items field
// exists and is an array; anything else is rejected with no state change.
func (h *Handlers) Import(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, 16<<20))
	if err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	var probe map[string]json.RawMessage
	if err := json.Unmarshal(body, &probe); err != nil {
		http.Error(w, "not a quotation file", http.StatusBadRequest)
		return
	}
	rawItems, ok := probe["items"]
	if !ok {
		http.Error(w, "not a quotation file: missing items", http.StatusBadRequest)
		return
	}
	var items []json.RawMessage
	if err := json.Unmarshal(rawItems, &items); err != nil {
		http.Error(w, "not a quotation file: items is not a list", http.StatusBadRequest)
		return
	}

	doc := quotation.Default()
	if err := json.Unmarshal(body, &doc); err != nil {
		http.Error(w, "not a quotation file", http.StatusBadRequest)
		return
	}
	doc.NormalizeWidths()
	doc.EnsureItemIDs()

	writeJSON(w, http.StatusOK, doc)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
