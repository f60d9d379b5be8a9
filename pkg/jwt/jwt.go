package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// DefaultTTL is the lifetime of a session token.
const DefaultTTL = 2 * time.Hour

// SessionClaims carries the authenticated identity. Subject is the account email.
type SessionClaims struct {
	jwt.RegisteredClaims
}

// Service mints and verifies HS256 session tokens.
// The signing key is kept in memory only.
type Service struct {
	signingKey []byte
	ttl        time.Duration
	issuer     string
	now        func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithTTL overrides the session lifetime. Non-positive values are ignored.
func WithTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// WithClock replaces the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithIssuer sets the iss claim and requires it on verification.
func WithIssuer(issuer string) Option {
	return func(s *Service) {
		s.issuer = issuer
	}
}

// New creates a session service with the provided signing key.
// The key should be at least 32 bytes for adequate security with HMAC-SHA256.
func New(signingKey []byte, opts ...Option) (*Service, error) {
	if len(signingKey) == 0 {
		return nil, ErrMissingSigningKey
	}

	s := &Service{
		signingKey: append([]byte(nil), signingKey...),
		ttl:        DefaultTTL,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

// NewFromString is a convenience wrapper around New for string-based configuration.
func NewFromString(signingKey string, opts ...Option) (*Service, error) {
	return New([]byte(signingKey), opts...)
}

// TTL returns the configured session lifetime.
func (s *Service) TTL() time.Duration {
	return s.ttl
}

// Mint issues a session token for subject.
func (s *Service) Mint(subject string) (string, error) {
	token, _, err := s.MintWithExpiry(subject)
	return token, err
}

// MintWithExpiry issues a session token and reports when it expires.
func (s *Service) MintWithExpiry(subject string) (string, time.Time, error) {
	if subject == "" {
		return "", time.Time{}, ErrMissingSubject
	}

	now := s.now()
	expiresAt := jwt.NewNumericDate(now.Add(s.ttl))
	claims := SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   subject,
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: expiresAt,
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.signingKey)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("jwt: failed to sign session: %w", err)
	}

	return signed, expiresAt.Time, nil
}

// Parse validates a session token and returns its claims.
// Every failure is reported as ErrInvalidSession joined with the cause.
func (s *Service) Parse(tokenString string) (*SessionClaims, error) {
	if tokenString == "" {
		return nil, errors.Join(ErrInvalidSession, ErrMissingToken)
	}

	claims := &SessionClaims{}
	if _, err := jwt.ParseWithClaims(tokenString, claims, s.keyFunc, s.parserOptions()...); err != nil {
		return nil, errors.Join(ErrInvalidSession, err)
	}

	if claims.Subject == "" {
		return nil, errors.Join(ErrInvalidSession, ErrMissingSubject)
	}

	return claims, nil
}

// Verify validates a session token and returns the subject it was issued for.
func (s *Service) Verify(tokenString string) (string, error) {
	claims, err := s.Parse(tokenString)
	if err != nil {
		return "", err
	}
	return claims.Subject, nil
}

func (s *Service) keyFunc(*jwt.Token) (any, error) {
	return s.signingKey, nil
}

func (s *Service) parserOptions() []jwt.ParserOption {
	opts := []jwt.ParserOption{
		// Reject tokens using unexpected algorithms to prevent algorithm confusion attacks
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithStrictDecoding(),
		jwt.WithTimeFunc(s.now),
	}
	if s.issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.issuer))
	}
	return opts
}
