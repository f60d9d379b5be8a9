package ratelimiter

import (
	"context"
	"time"
)

// Store keeps bucket state.
type Store interface {
	// ConsumeTokens refills the bucket for key as of now, then subtracts tokens.
	// A negative remaining count means the request is denied; the deficit is
	// not carried over.
	ConsumeTokens(ctx context.Context, key string, tokens int, config Config, now time.Time) (remaining int, resetAt time.Time, err error)

	// Reset clears state for key.
	Reset(ctx context.Context, key string) error
}
