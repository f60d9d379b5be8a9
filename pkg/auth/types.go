package auth

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/contentstudio/studio/pkg/token"
)

// User represents a registered account.
type User struct {
	ID         uuid.UUID
	Email      string
	Name       string
	IsVerified bool
	CreatedAt  time.Time
	VerifiedAt *time.Time
}

// Session is the result of a successful login verification.
type Session struct {
	Token     string
	Email     string
	ExpiresAt time.Time
}

// Storage defines the account persistence the flow depends on.
// Email uniqueness must be enforced by the implementation.
type Storage interface {
	// GetUserByEmail returns ErrUserNotFound when no account has the email.
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	// CreateUser returns ErrEmailAlreadyExists when the email is taken.
	CreateUser(ctx context.Context, user *User) error
	// MarkVerified sets the verified flag. It returns ErrUserNotFound when absent.
	MarkVerified(ctx context.Context, email string) error
}

// Notifier delivers a purpose-specific link to a recipient.
type Notifier interface {
	Send(ctx context.Context, recipient, link string, purpose token.Purpose) error
}

// ReplayGuard records consumed magic-link tokens.
type ReplayGuard interface {
	// Consume marks id as used until the given time. It returns
	// ErrTokenAlreadyUsed when id was consumed before.
	Consume(ctx context.Context, id string, until time.Time) error
}
