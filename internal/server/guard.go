package server

import (
	"context"
	"sync"
)

// searchGuard keeps one outstanding search per user. Starting a new search
// cancels the user's previous one, so a stale result never lands after a newer one.
type searchGuard struct {
	mu       sync.Mutex
	inflight map[string]*guardEntry
}

type guardEntry struct {
	cancel     context.CancelCauseFunc
	superseded bool
}

func newSearchGuard() *searchGuard {
	return &searchGuard{inflight: make(map[string]*guardEntry)}
}

// begin derives a context for a user's search and supersedes any earlier one.
// The returned done func must be called when the search finishes; it reports
// whether the search was superseded while running.
func (g *searchGuard) begin(ctx context.Context, user string) (context.Context, func() bool) {
	ctx, cancel := context.WithCancelCause(ctx)
	entry := &guardEntry{cancel: cancel}

	g.mu.Lock()
	if prev, ok := g.inflight[user]; ok {
		prev.superseded = true
		prev.cancel(errSuperseded)
	}
	g.inflight[user] = entry
	g.mu.Unlock()

	done := func() bool {
		g.mu.Lock()
		if g.inflight[user] == entry {
			delete(g.inflight, user)
		}
		superseded := entry.superseded
		g.mu.Unlock()

		cancel(nil)
		return superseded
	}
	return ctx, done
}

// active returns the number of searches in flight.
func (g *searchGuard) active() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.inflight)
}
