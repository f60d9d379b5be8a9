package auth

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/contentstudio/studio/pkg/jwt"
	"github.com/contentstudio/studio/pkg/logger"
	"github.com/contentstudio/studio/pkg/sanitizer"
	"github.com/contentstudio/studio/pkg/token"
	"github.com/contentstudio/studio/pkg/validator"
)

// maxNameLength bounds the display name accepted on registration.
const maxNameLength = 100

// Service orchestrates registration, email verification and magic-link login.
type Service struct {
	storage  Storage
	notifier Notifier
	tokens   *token.Codec
	sessions *jwt.Service
	links    LinkBuilder
	replay   ReplayGuard
	logger   *slog.Logger
	now      func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithReplayGuard makes magic links single-use.
func WithReplayGuard(guard ReplayGuard) Option {
	return func(s *Service) {
		s.replay = guard
	}
}

// WithClock replaces the time source used for account timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// NewService creates the auth flow controller.
func NewService(storage Storage, notifier Notifier, tokens *token.Codec, sessions *jwt.Service, links LinkBuilder, opts ...Option) *Service {
	s := &Service{
		storage:  storage,
		notifier: notifier,
		tokens:   tokens,
		sessions: sessions,
		links:    links,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:      time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	s.logger = s.logger.With(logger.Component("auth"))

	return s
}

// Register creates an unverified account and sends the verification link.
// A dispatch failure is reported as ErrDispatchFailure; the account is kept.
func (s *Service) Register(ctx context.Context, name, email string) error {
	name = sanitizer.NormalizeName(name)
	email = sanitizer.NormalizeEmail(email)
	if err := validator.Apply(
		validator.RequiredString("name", name),
		validator.MaxLenString("name", name, maxNameLength),
		validator.ValidEmail("email", email),
	); err != nil {
		return err
	}

	_, err := s.storage.GetUserByEmail(ctx, email)
	if err == nil {
		s.logger.WarnContext(ctx, "registration rejected", logger.Email(email), logger.Error(ErrDuplicateAccount))
		return ErrDuplicateAccount
	}
	if !errors.Is(err, ErrUserNotFound) {
		return fmt.Errorf("failed to check account: %w", err)
	}

	user := &User{
		ID:        uuid.New(),
		Email:     email,
		Name:      name,
		CreatedAt: s.now(),
	}
	if err := s.storage.CreateUser(ctx, user); err != nil {
		// Concurrent registration lost the race on the unique constraint.
		if errors.Is(err, ErrEmailAlreadyExists) {
			return ErrDuplicateAccount
		}
		return fmt.Errorf("failed to create account: %w", err)
	}

	s.logger.InfoContext(ctx, "account registered", logger.UserID(user.ID.String()), logger.Email(email))

	return s.dispatch(ctx, email, token.PurposeVerify)
}

// VerifyEmail consumes a verify-purpose token and marks the account verified.
func (s *Service) VerifyEmail(ctx context.Context, tok string) (*User, error) {
	claims, err := s.parse(ctx, tok, token.PurposeVerify)
	if err != nil {
		return nil, err
	}

	user, err := s.lookup(ctx, claims.Subject)
	if err != nil {
		return nil, err
	}

	// The link is spent only after the account is verified, so a failed
	// write leaves it usable for a retry. MarkVerified is idempotent.
	if !user.IsVerified {
		if err := s.storage.MarkVerified(ctx, user.Email); err != nil {
			if errors.Is(err, ErrUserNotFound) {
				return nil, ErrAccountNotFound
			}
			return nil, fmt.Errorf("failed to mark account verified: %w", err)
		}
		verifiedAt := s.now()
		user.IsVerified = true
		user.VerifiedAt = &verifiedAt
	}

	if err := s.consume(ctx, claims); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "email verified", logger.UserID(user.ID.String()), logger.Email(user.Email))

	return user, nil
}

// RequestLogin sends a login link to a verified account.
// Unverified accounts get ErrNotVerified and no token is minted.
func (s *Service) RequestLogin(ctx context.Context, email string) error {
	email = sanitizer.NormalizeEmail(email)
	if err := validator.Apply(validator.ValidEmail("email", email)); err != nil {
		return err
	}

	user, err := s.lookup(ctx, email)
	if err != nil {
		return err
	}

	if !user.IsVerified {
		s.logger.WarnContext(ctx, "login rejected", logger.Email(email), logger.Error(ErrNotVerified))
		return ErrNotVerified
	}

	return s.dispatch(ctx, user.Email, token.PurposeLogin)
}

// VerifyLogin consumes a login-purpose token and issues a session.
func (s *Service) VerifyLogin(ctx context.Context, tok string) (*Session, error) {
	claims, err := s.parse(ctx, tok, token.PurposeLogin)
	if err != nil {
		return nil, err
	}

	user, err := s.lookup(ctx, claims.Subject)
	if err != nil {
		return nil, err
	}

	if err := s.consume(ctx, claims); err != nil {
		return nil, err
	}

	sessionToken, expiresAt, err := s.sessions.MintWithExpiry(user.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to issue session: %w", err)
	}

	s.logger.InfoContext(ctx, "session issued", logger.UserID(user.ID.String()), logger.Email(user.Email))

	return &Session{
		Token:     sessionToken,
		Email:     user.Email,
		ExpiresAt: expiresAt,
	}, nil
}

// Authenticate verifies a session token and returns the account email.
func (s *Service) Authenticate(_ context.Context, sessionToken string) (string, error) {
	return s.sessions.Verify(sessionToken)
}

// Account returns the account registered under email.
func (s *Service) Account(ctx context.Context, email string) (*User, error) {
	return s.lookup(ctx, sanitizer.NormalizeEmail(email))
}

func (s *Service) dispatch(ctx context.Context, email string, purpose token.Purpose) error {
	tok, err := s.tokens.Mint(email, purpose)
	if err != nil {
		return fmt.Errorf("failed to mint %s token: %w", purpose, err)
	}

	if err := s.notifier.Send(ctx, email, s.links.Link(purpose, tok), purpose); err != nil {
		s.logger.ErrorContext(ctx, "failed to dispatch magic link",
			logger.Email(email),
			logger.Purpose(purpose.String()),
			logger.Error(err),
		)
		return fmt.Errorf("%w: %w", ErrDispatchFailure, err)
	}

	s.logger.InfoContext(ctx, "magic link sent", logger.Email(email), logger.Purpose(purpose.String()))

	return nil
}

func (s *Service) parse(ctx context.Context, tok string, expected token.Purpose) (*token.Claims, error) {
	claims, err := s.tokens.Parse(tok, expected)
	if err != nil {
		s.logger.WarnContext(ctx, "magic link rejected", logger.Purpose(expected.String()), logger.Error(err))
		return nil, err
	}
	return claims, nil
}

func (s *Service) lookup(ctx context.Context, email string) (*User, error) {
	user, err := s.storage.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return user, nil
}

func (s *Service) consume(ctx context.Context, claims *token.Claims) error {
	if s.replay == nil {
		return nil
	}

	id := claims.ID
	if id == "" {
		return fmt.Errorf("%w: missing token id", ErrInvalidToken)
	}

	var until time.Time
	if claims.ExpiresAt != nil {
		until = claims.ExpiresAt.Time
	}

	if err := s.replay.Consume(ctx, id, until); err != nil {
		if errors.Is(err, ErrTokenAlreadyUsed) {
			s.logger.WarnContext(ctx, "magic link replayed", logger.Email(claims.Subject), logger.Purpose(claims.Purpose.String()))
			return fmt.Errorf("%w: %w", ErrInvalidToken, ErrTokenAlreadyUsed)
		}
		return fmt.Errorf("failed to record token use: %w", err)
	}

	return nil
}
