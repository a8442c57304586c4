package handlers

import "sync"

type gateState string

const (
	gateIdle    gateState = "idle"
	gateRunning gateState = "running"
)

// gate serializes a long-running operation: a second request while one is in
// flight is rejected rather than queued.
type gate struct {
	mu    sync.Mutex
	state gateState
}

func (g *gate) tryAcquire() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.state == gateRunning {
		return false
	}
	g.state = gateRunning
	return true
}

func (g *gate) release() {
	g.mu.Lock()
	g.state = gateIdle
	g.mu.Unlock()
}
