package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/contentstudio/studio/pkg/auth"
)

// DefaultKeyPrefix namespaces consumed token IDs.
const DefaultKeyPrefix = "studio:jti:"

// ReplayGuard records consumed magic-link token IDs in Redis so a link
// works once across every server instance.
type ReplayGuard struct {
	client redis.UniversalClient
	prefix string
	now    func() time.Time
}

// ReplayGuardOption configures a ReplayGuard.
type ReplayGuardOption func(*ReplayGuard)

// WithKeyPrefix overrides DefaultKeyPrefix.
func WithKeyPrefix(prefix string) ReplayGuardOption {
	return func(g *ReplayGuard) {
		if prefix != "" {
			g.prefix = prefix
		}
	}
}

// WithClock sets the clock used to compute key expiry.
func WithClock(now func() time.Time) ReplayGuardOption {
	return func(g *ReplayGuard) {
		if now != nil {
			g.now = now
		}
	}
}

// NewReplayGuard wraps an existing client.
func NewReplayGuard(client redis.UniversalClient, opts ...ReplayGuardOption) *ReplayGuard {
	g := &ReplayGuard{client: client, prefix: DefaultKeyPrefix, now: time.Now}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Consume marks id as used until the given time. A second call for the same
// id before the key expires returns auth.ErrTokenAlreadyUsed.
func (g *ReplayGuard) Consume(ctx context.Context, id string, until time.Time) error {
	if id == "" {
		return ErrEmptyTokenID
	}

	// SET NX rejects sub-millisecond and non-positive expirations.
	ttl := max(until.Sub(g.now()), time.Second)

	ok, err := g.client.SetNX(ctx, g.prefix+id, until.Unix(), ttl).Result()
	if err != nil {
		return fmt.Errorf("redis: consume token: %w", err)
	}
	if !ok {
		return auth.ErrTokenAlreadyUsed
	}
	return nil
}
