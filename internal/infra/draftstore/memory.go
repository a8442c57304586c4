package draftstore

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Memory keeps drafts in process memory with a TTL. Used when no database is
// configured; drafts then live only as long as the server does.
type Memory struct {
	c *gocache.Cache
}

func NewMemory(ttl time.Duration) *Memory {
	return &Memory{c: gocache.New(ttl, 2*ttl)}
}

func (m *Memory) Save(ctx context.Context, key string, payload []byte) error {
	buf := make([]byte, len(payload))
	copy(buf, payload)
	m.c.Set(key, buf, gocache.DefaultExpiration)
	return nil
}

func (m *Memory) Load(ctx context.Context, key string) ([]byte, error) {
	v, ok := m.c.Get(key)
	if !ok {
		return nil, ErrNotFound
	}
	return v.([]byte), nil
}

func (m *Memory) Delete(ctx context.Context, key string) error {
	m.c.Delete(key)
	return nil
}
