package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quotedesk/go_backend/internal/app/config"
	"quotedesk/go_backend/internal/domain/quotation"
	"quotedesk/go_backend/internal/infra/draftstore"
)

func newTestHandlers() *Handlers {
	cfg := config.Config{OpenAIModel: "gpt-4o-mini"}
	return New(cfg, draftstore.NewMemory(time.Minute))
}

func testRouter(h *Handlers) chi.Router {
	r := chi.NewRouter()
	r.Post("/quotations/render", h.Render)
	r.Post("/quotations/export", h.Export)
	r.Post("/quotations/import", h.Import)
	r.Post("/quotations/autofill", h.Autofill)
	r.Put("/drafts/{key}", h.SaveDraft)
	r.Get("/drafts/{key}", h.LoadDraft)
	r.Delete("/drafts/{key}", h.DeleteDraft)
	return r
}

func doJSON(t *testing.T, r chi.Router, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestImportRejectsBadShapes(t *testing.T) {
	r := testRouter(newTestHandlers())

	tests := []struct {
		name string
		body string
	}{
		{"not json", "not json at all"},
		{"missing items", `{"recipientName":"A"}`},
		{"items not a list", `{"items":{"a":1}}`},
		{"items is a string", `{"items":"nope"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(t, r, http.MethodPost, "/quotations/import", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestImportMergesOverDefaults(t *testing.T) {
	r := testRouter(newTestHandlers())

	body := `{"items":[{"description":"Cable","unit":"m","quantity":10,"unitCost":2}],"recipientName":"Acme","notesBoxWidth":70,"totalBoxWidth":99}`
	rec := doJSON(t, r, http.MethodPost, "/quotations/import", body)
	require.Equal(t, http.StatusOK, rec.Code)

	var doc quotation.Document
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
	assert.Equal(t, "Acme", doc.RecipientName)
	require.Len(t, doc.Items, 1)
	assert.NotEmpty(t, doc.Items[0].ID, "imported items get IDs")
	// Broken complementary pair is repaired from the notes half.
	assert.Equal(t, 70, doc.NotesBoxWidth)
	assert.Equal(t, 30, doc.TotalBoxWidth)
	// Fields absent from the file keep their defaults.
	assert.Equal(t, "Quotation", doc.Subject)
}

func TestImportAcceptsEmptyItemList(t *testing.T) {
	r := testRouter(newTestHandlers())
	rec := doJSON(t, r, http.MethodPost, "/quotations/import", `{"items":[]}`)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestExportIsIndentedJSON(t *testing.T) {
	r := testRouter(newTestHandlers())

	doc := quotation.Default()
	doc.RecipientName = "Acme"
	body, _ := json.Marshal(doc)

	rec := doJSON(t, r, http.MethodPost, "/quotations/export", string(body))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "quotation.json")
	assert.Contains(t, rec.Body.String(), "\n  \"recipientName\": \"Acme\"")

	var back quotation.Document
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &back))
	assert.Equal(t, "Acme", back.RecipientName)
}

func TestRenderReturnsPDF(t *testing.T) {
	r := testRouter(newTestHandlers())

	doc := quotation.Default()
	doc.Items = []quotation.Item{{Description: "Cable", Unit: "m", Quantity: 10, UnitCost: 2}}
	body, _ := json.Marshal(doc)

	rec := doJSON(t, r, http.MethodPost, "/quotations/render", string(body))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Equal(t, "%PDF-", rec.Body.String()[:5])
}

func TestRenderRejectsConcurrentExport(t *testing.T) {
	h := newTestHandlers()
	r := testRouter(h)

	require.True(t, h.renderGate.tryAcquire())
	defer h.renderGate.release()

	rec := doJSON(t, r, http.MethodPost, "/quotations/render", `{"items":[]}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestDraftRoundTrip(t *testing.T) {
	r := testRouter(newTestHandlers())

	doc := quotation.Default()
	doc.Notes = "work in progress"
	body, _ := json.Marshal(doc)

	rec := doJSON(t, r, http.MethodPut, "/drafts/session-1", string(body))
	require.Equal(t, http.StatusAccepted, rec.Code)
	assert.Contains(t, rec.Body.String(), "queued")

	// Load flushes the pending debounced write first.
	rec = doJSON(t, r, http.MethodGet, "/drafts/session-1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var back quotation.Document
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &back))
	assert.Equal(t, "work in progress", back.Notes)

	rec = doJSON(t, r, http.MethodDelete, "/drafts/session-1", "")
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, r, http.MethodGet, "/drafts/session-1", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestLoadDraftMissing(t *testing.T) {
	r := testRouter(newTestHandlers())
	rec := doJSON(t, r, http.MethodGet, "/drafts/never-saved", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAutofillMergesResponse(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		content := `{"recipientName":"Acme","items":[{"description":"LED panel","unit":"pcs","quantity":24,"unitCost":18.5}]}`
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{{"message": map[string]any{"content": content}}},
		})
	}))
	defer upstream.Close()

	h := newTestHandlers()
	h.AI.BaseURL = upstream.URL
	h.AI.APIKey = "test-key"
	r := testRouter(h)

	doc := quotation.Default()
	doc.Subject = "Keep this subject"
	reqBody, _ := json.Marshal(map[string]any{"prompt": "24 LED panels at 18.50 for Acme", "document": doc})

	rec := doJSON(t, r, http.MethodPost, "/quotations/autofill", string(reqBody))
	require.Equal(t, http.StatusOK, rec.Code)

	var got quotation.Document
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "Acme", got.RecipientName)
	assert.Equal(t, "Keep this subject", got.Subject)
	require.Len(t, got.Items, 1)
	assert.NotEmpty(t, got.Items[0].ID)
}

func TestAutofillFailurePreservesPromptAndDocument(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	}))
	defer upstream.Close()

	h := newTestHandlers()
	h.AI.BaseURL = upstream.URL
	h.AI.APIKey = "test-key"
	r := testRouter(h)

	reqBody, _ := json.Marshal(map[string]any{"prompt": "my prompt", "document": quotation.Default()})
	rec := doJSON(t, r, http.MethodPost, "/quotations/autofill", string(reqBody))

	require.Equal(t, http.StatusBadGateway, rec.Code)
	var e autofillError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &e))
	assert.Equal(t, "my prompt", e.Prompt)
}

func TestAutofillValidation(t *testing.T) {
	h := newTestHandlers()
	r := testRouter(h)

	rec := doJSON(t, r, http.MethodPost, "/quotations/autofill", `{"prompt":"   "}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// No API key configured.
	rec = doJSON(t, r, http.MethodPost, "/quotations/autofill", `{"prompt":"fill it"}`)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestAutofillRejectsConcurrentRequest(t *testing.T) {
	h := newTestHandlers()
	r := testRouter(h)

	require.True(t, h.autofillGate.tryAcquire())
	defer h.autofillGate.release()

	rec := doJSON(t, r, http.MethodPost, "/quotations/autofill", `{"prompt":"x"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestGate(t *testing.T) {
	var g gate
	assert.True(t, g.tryAcquire())
	assert.False(t, g.tryAcquire())
	g.release()
	assert.True(t, g.tryAcquire())
}

