package app

import (
	"context"
	"log"
	"net/http"
	"time"

	"quotedesk/go_backend/internal/app/config"
	apphttp "quotedesk/go_backend/internal/app/http"
	"quotedesk/go_backend/internal/infra/db/postgres"
	"quotedesk/go_backend/internal/infra/draftstore"
)

func Run() {
	cfg := config.MustLoad()

	var store draftstore.Store
	if cfg.DatabaseURL != "" {
		db, err := postgres.New(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("db: %v", err)
		}
		defer db.Close()

		store, err = draftstore.NewPostgres(context.Background(), db.Pool)
		if err != nil {
			log.Fatalf("drafts: %v", err)
		}
	} else {
		log.Printf("app: no DATABASE_URL set, drafts held in memory only")
		store = draftstore.NewMemory(24 * time.Hour)
	}

	router := apphttp.NewRouter(cfg, store)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Printf("listening on %s", cfg.HTTPAddr)
	log.Fatal(srv.ListenAndServe())
}
