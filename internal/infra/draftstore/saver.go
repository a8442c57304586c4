package draftstore

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"quotedesk/go_backend/internal/domain/quotation"
)

// Saver coalesces draft writes: each Queue call resets a per-key timer, and
// only after the key has been quiet for the debounce delay is the document
// written. On a write failure it retries once with the heavy image fields
// stripped, then gives up on that key entirely. All failure modes are logged
// and swallowed; auto-save is strictly best-effort.
type Saver struct {
	store   Store
	delay   time.Duration
	timeout time.Duration

	mu       sync.Mutex
	timers   map[string]*time.Timer
	pending  map[string]quotation.Document
	disabled map[string]bool
}

func NewSaver(store Store, delay time.Duration) *Saver {
	return &Saver{
		store:    store,
		delay:    delay,
		timeout:  10 * time.Second,
		timers:   make(map[string]*time.Timer),
		pending:  make(map[string]quotation.Document),
		disabled: make(map[string]bool),
	}
}

// Queue schedules doc for saving under key once edits settle. Later calls
// with the same key replace the pending document and restart the clock.
func (s *Saver) Queue(key string, doc quotation.Document) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.disabled[key] {
		return
	}
	s.pending[key] = doc
	if t, ok := s.timers[key]; ok {
		t.Stop()
	}
	s.timers[key] = time.AfterFunc(s.delay, func() { s.flush(key) })
}

// Flush writes the pending document for key immediately, if any.
func (s *Saver) Flush(key string) {
	s.mu.Lock()
	if t, ok := s.timers[key]; ok {
		t.Stop()
	}
	s.mu.Unlock()
	s.flush(key)
}

func (s *Saver) flush(key string) {
	s.mu.Lock()
	doc, ok := s.pending[key]
	delete(s.pending, key)
	delete(s.timers, key)
	s.mu.Unlock()
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	err := s.save(ctx, key, doc)
	if err == nil {
		return
	}
	log.Printf("draft saver: save %s failed, retrying without images: %v", key, err)

	doc.StripImages()
	if err := s.save(ctx, key, doc); err != nil {
		log.Printf("draft saver: degraded save %s failed, disabling auto-save for key: %v", key, err)
		s.mu.Lock()
		s.disabled[key] = true
		s.mu.Unlock()
	}
}

func (s *Saver) save(ctx context.Context, key string, doc quotation.Document) error {
	payload, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	return s.store.Save(ctx, key, payload)
}

// Disabled reports whether auto-save has been shut off for key after
// repeated failures.
func (s *Saver) Disabled(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.disabled[key]
}
