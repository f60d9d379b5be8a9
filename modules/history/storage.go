package history

import (
	"context"

	"github.com/google/uuid"
)

// Storage persists records. Every lookup is scoped to the owner; a record
// owned by someone else is reported as ErrRecordNotFound.
type Storage interface {
	Insert(ctx context.Context, rec *Record) error
	// ListByOwner returns the owner's records, newest first.
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]Record, error)
	Get(ctx context.Context, ownerID, id uuid.UUID) (*Record, error)
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
}
