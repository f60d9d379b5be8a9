package auth

import (
	"context"
	"sync"
	"time"
)

// MemoryReplayGuard tracks consumed token IDs in process memory.
// Entries are pruned once their token would have expired anyway.
type MemoryReplayGuard struct {
	mu   sync.Mutex
	used map[string]time.Time
	now  func() time.Time
}

// ReplayGuardOption configures a MemoryReplayGuard.
type ReplayGuardOption func(*MemoryReplayGuard)

// WithGuardClock replaces the time source used to prune expired entries.
// It should match the clock of the codec that issued the tokens.
func WithGuardClock(now func() time.Time) ReplayGuardOption {
	return func(g *MemoryReplayGuard) {
		if now != nil {
			g.now = now
		}
	}
}

// NewMemoryReplayGuard creates an empty in-memory replay guard.
func NewMemoryReplayGuard(opts ...ReplayGuardOption) *MemoryReplayGuard {
	g := &MemoryReplayGuard{
		used: make(map[string]time.Time),
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Consume marks id as used until the given time.
// An id seen before is rejected even if its entry is due for pruning.
func (g *MemoryReplayGuard) Consume(_ context.Context, id string, until time.Time) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.used[id]; ok {
		return ErrTokenAlreadyUsed
	}

	now := g.now()
	for key, expiresAt := range g.used {
		if !now.Before(expiresAt) {
			delete(g.used, key)
		}
	}

	g.used[id] = until
	return nil
}
