package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"

	"quotedesk/go_backend/internal/app/config"
	"quotedesk/go_backend/internal/app/http/handlers"
	"quotedesk/go_backend/internal/app/http/middleware"
	"quotedesk/go_backend/internal/infra/draftstore"
)

func NewRouter(cfg config.Config, store draftstore.Store) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Logging)
	r.Use(middleware.CORS(cfg.CORSAllowOrigin))

	h := handlers.New(cfg, store)

	r.Get("/health", h.Health)

	r.Route("/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(middleware.InternalAuth(cfg.InternalToken))

			r.Post("/quotations/render", h.Render)
			r.Post("/quotations/export", h.Export)
			r.Post("/quotations/import", h.Import)

			r.Group(func(r chi.Router) {
				r.Use(httprate.LimitByIP(10, time.Minute))
				r.Post("/quotations/autofill", h.Autofill)
			})

			r.Put("/drafts/{key}", h.SaveDraft)
			r.Get("/drafts/{key}", h.LoadDraft)
			r.Delete("/drafts/{key}", h.DeleteDraft)
		})
	})

	return r
}
