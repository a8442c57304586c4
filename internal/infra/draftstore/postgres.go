package draftstore

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Postgres struct {
	pool *pgxpool.Pool
}

const createDraftsTable = `
CREATE TABLE IF NOT EXISTS quote_drafts (
	key        text PRIMARY KEY,
	payload    jsonb NOT NULL,
	updated_at timestamptz NOT NULL DEFAULT now()
)`

func NewPostgres(ctx context.Context, pool *pgxpool.Pool) (*Postgres, error) {
	if _, err := pool.Exec(ctx, createDraftsTable); err != nil {
		return nil, err
	}
	return &Postgres{pool: pool}, nil
}

func (p *Postgres) Save(ctx context.Context, key string, payload []byte) error {
	_, err := p.pool.Exec(ctx, `
		INSERT INTO quote_drafts (key, payload, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET payload = $2, updated_at = now()`,
		key, payload)
	return err
}

func (p *Postgres) Load(ctx context.Context, key string) ([]byte, error) {
	var payload []byte
	err := p.pool.QueryRow(ctx,
		`SELECT payload FROM quote_drafts WHERE key = $1`, key).Scan(&payload)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return payload, nil
}

func (p *Postgres) Delete(ctx context.Context, key string) error {
	_, err := p.pool.Exec(ctx, `DELETE FROM quote_drafts WHERE key = $1`, key)
	return err
}
