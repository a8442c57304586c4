// Package draftstore persists in-progress quotation documents keyed by a
// client-chosen draft key. Persistence is best-effort: the editing flow must
// never block or fail because a draft could not be written.
package draftstore

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("draft not found")

type Store interface {
	Save(ctx context.Context, key string, payload []byte) error
	Load(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
}
