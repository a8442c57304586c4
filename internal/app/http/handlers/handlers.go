package handlers

import (
	"net/http"
	"time"

	"quotedesk/go_backend/internal/app/config"
	"quotedesk/go_backend/internal/domain/aifill"
	"quotedesk/go_backend/internal/domain/quotation/pdf"
	pdfgen "quotedesk/go_backend/internal/domain/quotation/pdf/gofpdf"
	"quotedesk/go_backend/internal/infra/draftstore"
)

const draftDebounce = 2 * time.Second

type Handlers struct {
	Cfg   config.Config
	Store draftstore.Store
	Saver *draftstore.Saver
	AI    *aifill.Client
	PDF   pdf.Generator

	renderGate   gate
	autofillGate gate
}

func New(cfg config.Config, store draftstore.Store) *Handlers {
	return &Handlers{
		Cfg:   cfg,
		Store: store,
		Saver: draftstore.NewSaver(store, draftDebounce),
		AI: &aifill.Client{
			BaseURL: cfg.OpenAIBaseURL,
			APIKey:  cfg.OpenAIAPIKey,
			Model:   cfg.OpenAIModel,
			HTTP: &http.Client{
				Timeout: 30 * time.Second,
			},
		},
		PDF: pdfgen.New(),
	}
}
