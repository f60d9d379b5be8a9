package history

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/contentstudio/studio/pkg/auth"
	"github.com/contentstudio/studio/pkg/pg"
)

const (
	recordColumns = `id, owner_id, title, content_type, tone, audience, purpose, word_limit, content, created_at`

	insertRecord = `INSERT INTO content_history (` + recordColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	listRecords  = `SELECT ` + recordColumns + ` FROM content_history WHERE owner_id = $1 ORDER BY created_at DESC, id DESC`
	getRecord    = `SELECT ` + recordColumns + ` FROM content_history WHERE id = $1 AND owner_id = $2`
	deleteRecord = `DELETE FROM content_history WHERE id = $1 AND owner_id = $2`
)

// PostgresStorage keeps records in the content_history table.
type PostgresStorage struct {
	db pg.DBTX
}

func NewPostgresStorage(db pg.DBTX) *PostgresStorage {
	return &PostgresStorage{db: db}
}

func (s *PostgresStorage) Insert(ctx context.Context, r *Record) error {
	_, err := s.db.Exec(ctx, insertRecord,
		r.ID, r.OwnerID, r.Title, r.ContentType, r.Tone, r.Audience, r.Purpose, r.WordLimit, r.Content, r.CreatedAt)
	if pg.IsForeignKeyViolationError(err) {
		return fmt.Errorf("history: insert: %w", auth.ErrAccountNotFound)
	}
	if err != nil {
		return fmt.Errorf("history: insert: %w", err)
	}
	return nil
}

func (s *PostgresStorage) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]Record, error) {
	rows, err := s.db.Query(ctx, listRecords, ownerID)
	if err != nil {
		return nil, fmt.Errorf("history: list: %w", err)
	}
	records, err := pgx.CollectRows(rows, scanRecord)
	if err != nil {
		return nil, fmt.Errorf("history: list: %w", err)
	}
	return records, nil
}

func (s *PostgresStorage) Get(ctx context.Context, ownerID, id uuid.UUID) (*Record, error) {
	rows, err := s.db.Query(ctx, getRecord, id, ownerID)
	if err != nil {
		return nil, fmt.Errorf("history: get: %w", err)
	}
	rec, err := pgx.CollectExactlyOneRow(rows, scanRecord)
	if pg.IsNotFoundError(err) {
		return nil, ErrRecordNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("history: get: %w", err)
	}
	return &rec, nil
}

func (s *PostgresStorage) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	tag, err := s.db.Exec(ctx, deleteRecord, id, ownerID)
	if err != nil {
		return fmt.Errorf("history: delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrRecordNotFound
	}
	return nil
}

func scanRecord(row pgx.CollectableRow) (Record, error) {
	var r Record
	err := row.Scan(&r.ID, &r.OwnerID, &r.Title, &r.ContentType, &r.Tone, &r.Audience,
		&r.Purpose, &r.WordLimit, &r.Content, &r.CreatedAt)
	return r, err
}
