package pg_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contentstudio/studio/pkg/pg"
)

func TestErrorClassifiers(t *testing.T) {
	t.Parallel()

	unique := &pgconn.PgError{Code: "23505"}
	fk := &pgconn.PgError{Code: "23503"}
	badText := &pgconn.PgError{Code: "22P02"}

	tests := []struct {
		name      string
		err       error
		notFound  bool
		duplicate bool
		foreign   bool
		invalid   bool
	}{
		{name: "nil", err: nil},
		{name: "plain", err: errors.New("boom")},
		{name: "no rows", err: pgx.ErrNoRows, notFound: true},
		{name: "wrapped no rows", err: fmt.Errorf("get: %w", pgx.ErrNoRows), notFound: true},
		{name: "unique", err: unique, duplicate: true},
		{name: "wrapped unique", err: fmt.Errorf("insert: %w", unique), duplicate: true},
		{name: "foreign key", err: fk, foreign: true},
		{name: "invalid text", err: badText, invalid: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.notFound, pg.IsNotFoundError(tt.err))
			assert.Equal(t, tt.duplicate, pg.IsDuplicateKeyError(tt.err))
			assert.Equal(t, tt.foreign, pg.IsForeignKeyViolationError(tt.err))
			assert.Equal(t, tt.invalid, pg.IsInvalidTextError(tt.err))
		})
	}
}

func TestHealthcheck(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectPing()
	require.NoError(t, pg.Healthcheck(mock)(context.Background()))

	mock.ExpectPing().WillReturnError(errors.New("connection refused"))
	assert.ErrorIs(t, pg.Healthcheck(mock)(context.Background()), pg.ErrHealthcheckFailed)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestConnectValidation(t *testing.T) {
	t.Parallel()

	_, err := pg.Connect(context.Background(), pg.Config{})
	assert.ErrorIs(t, err, pg.ErrEmptyConnectionString)

	_, err = pg.Connect(context.Background(), pg.Config{ConnectionString: "postgres://%zz"})
	assert.ErrorIs(t, err, pg.ErrFailedToParseDBConfig)
}

func TestMigrateRequiresFS(t *testing.T) {
	t.Parallel()

	err := pg.Migrate(context.Background(), nil, nil, pg.Config{}, nil)
	assert.ErrorIs(t, err, pg.ErrMigrationsNotProvided)
}
