package history

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/contentstudio/studio/pkg/auth"
	"github.com/contentstudio/studio/pkg/logger"
	"github.com/contentstudio/studio/pkg/sanitizer"
	"github.com/contentstudio/studio/pkg/validator"
)

// AccountLookup resolves a session subject to its account.
type AccountLookup interface {
	Account(ctx context.Context, email string) (*auth.User, error)
}

// Service manages the content history of authenticated accounts. Records
// are keyed by the account ID, never by email.
type Service struct {
	storage  Storage
	accounts AccountLookup
	now      func() time.Time
	logger   *slog.Logger
}

type Option func(*Service)

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

func NewService(storage Storage, accounts AccountLookup, opts ...Option) *Service {
	s := &Service{
		storage:  storage,
		accounts: accounts,
		now:      time.Now,
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With(logger.Component("history"))
	return s
}

// Save validates the draft and stores it for the account behind ownerEmail.
func (s *Service) Save(ctx context.Context, ownerEmail string, d Draft) (*Record, error) {
	d = normalizeDraft(d)
	if err := validator.Apply(
		validator.RequiredString("title", d.Title),
		validator.RequiredString("content", d.Content),
		validator.RangeNum("word_limit", d.WordLimit, 0, MaxWordLimit),
		validator.MaxLenString("content_type", d.ContentType, maxAttributeLength),
		validator.MaxLenString("tone", d.Tone, maxAttributeLength),
		validator.MaxLenString("audience", d.Audience, maxAttributeLength),
		validator.MaxLenString("purpose", d.Purpose, maxAttributeLength),
	); err != nil {
		return nil, err
	}

	owner, err := s.accounts.Account(ctx, ownerEmail)
	if err != nil {
		return nil, err
	}

	rec := &Record{
		ID:          uuid.New(),
		OwnerID:     owner.ID,
		Title:       d.Title,
		ContentType: d.ContentType,
		Tone:        d.Tone,
		Audience:    d.Audience,
		Purpose:     d.Purpose,
		WordLimit:   d.WordLimit,
		Content:     d.Content,
		CreatedAt:   s.now().UTC(),
	}
	if err := s.storage.Insert(ctx, rec); err != nil {
		return nil, fmt.Errorf("failed to save record: %w", err)
	}

	s.logger.InfoContext(ctx, "history record saved",
		logger.UserID(owner.ID.String()),
		slog.String("record_id", rec.ID.String()),
	)
	return rec, nil
}

// List returns the account's records, newest first.
func (s *Service) List(ctx context.Context, ownerEmail string) ([]Record, error) {
	owner, err := s.accounts.Account(ctx, ownerEmail)
	if err != nil {
		return nil, err
	}
	records, err := s.storage.ListByOwner(ctx, owner.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}
	if records == nil {
		records = []Record{}
	}
	return records, nil
}

func (s *Service) Get(ctx context.Context, ownerEmail string, id uuid.UUID) (*Record, error) {
	owner, err := s.accounts.Account(ctx, ownerEmail)
	if err != nil {
		return nil, err
	}
	rec, err := s.storage.Get(ctx, owner.ID, id)
	if err != nil {
		if errors.Is(err, ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to get record: %w", err)
	}
	return rec, nil
}

func (s *Service) Delete(ctx context.Context, ownerEmail string, id uuid.UUID) error {
	owner, err := s.accounts.Account(ctx, ownerEmail)
	if err != nil {
		return err
	}
	if err := s.storage.Delete(ctx, owner.ID, id); err != nil {
		if errors.Is(err, ErrRecordNotFound) {
			return ErrRecordNotFound
		}
		return fmt.Errorf("failed to delete record: %w", err)
	}
	s.logger.InfoContext(ctx, "history record deleted",
		logger.UserID(owner.ID.String()),
		slog.String("record_id", id.String()),
	)
	return nil
}

func normalizeDraft(d Draft) Draft {
	line := sanitizer.Compose(sanitizer.StripControlChars, sanitizer.NormalizeWhitespace)
	d.Title = sanitizer.TruncateRunes(line(d.Title), MaxTitleLength)
	d.ContentType = line(d.ContentType)
	d.Tone = line(d.Tone)
	d.Audience = line(d.Audience)
	d.Purpose = line(d.Purpose)
	d.Content = sanitizer.Trim(d.Content)
	return d
}
