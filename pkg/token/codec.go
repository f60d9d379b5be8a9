package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// DefaultTTL is the lifetime of a magic-link token.
const DefaultTTL = 10 * time.Minute

// Claims is the payload of a purpose-bound token.
// Subject carries the email address the token was issued for.
type Claims struct {
	Purpose Purpose `json:"purpose"`
	jwt.RegisteredClaims
}

// Codec mints and verifies purpose-bound tokens with a single HMAC key.
type Codec struct {
	secret []byte
	ttl    time.Duration
	issuer string
	now    func() time.Time
}

// Option configures a Codec.
type Option func(*Codec)

// WithTTL overrides the token lifetime. Non-positive values are ignored.
func WithTTL(ttl time.Duration) Option {
	return func(c *Codec) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// WithClock replaces the time source used for issuing and verifying tokens.
func WithClock(now func() time.Time) Option {
	return func(c *Codec) {
		if now != nil {
			c.now = now
		}
	}
}

// WithIssuer sets the iss claim. When set, tokens from other issuers are rejected.
func WithIssuer(issuer string) Option {
	return func(c *Codec) {
		c.issuer = issuer
	}
}

// New creates a token codec. The secret is copied and never exposed.
func New(secret []byte, opts ...Option) (*Codec, error) {
	if len(secret) == 0 {
		return nil, ErrMissingSecret
	}

	c := &Codec{
		secret: append([]byte(nil), secret...),
		ttl:    DefaultTTL,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// TTL returns the configured token lifetime.
func (c *Codec) TTL() time.Duration {
	return c.ttl
}

// Mint issues a signed token for subject, bound to purpose.
func (c *Codec) Mint(subject string, purpose Purpose) (string, error) {
	if subject == "" {
		return "", ErrMissingSubject
	}
	if !purpose.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownPurpose, purpose)
	}

	now := c.now()
	claims := Claims{
		Purpose: purpose,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   subject,
			Issuer:    c.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("token: failed to sign: %w", err)
	}

	return signed, nil
}

// Parse verifies the token and returns its claims.
// Malformed, tampered and expired tokens yield ErrInvalidToken; a valid token
// minted for a different purpose yields ErrWrongPurpose.
func (c *Codec) Parse(tokenString string, expected Purpose) (*Claims, error) {
	if tokenString == "" {
		return nil, ErrInvalidToken
	}

	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, c.keyFunc, c.parserOptions()...)
	if err != nil {
		return nil, errors.Join(ErrInvalidToken, err)
	}

	if claims.Subject == "" {
		return nil, errors.Join(ErrInvalidToken, ErrMissingSubject)
	}

	if claims.Purpose != expected {
		return nil, fmt.Errorf("%w: got %q, want %q", ErrWrongPurpose, claims.Purpose, expected)
	}

	return claims, nil
}

// Verify checks the token against the expected purpose and returns its subject.
func (c *Codec) Verify(tokenString string, expected Purpose) (string, error) {
	claims, err := c.Parse(tokenString, expected)
	if err != nil {
		return "", err
	}
	return claims.Subject, nil
}

func (c *Codec) keyFunc(*jwt.Token) (any, error) {
	return c.secret, nil
}

func (c *Codec) parserOptions() []jwt.ParserOption {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithStrictDecoding(),
		jwt.WithTimeFunc(c.now),
	}
	if c.issuer != "" {
		opts = append(opts, jwt.WithIssuer(c.issuer))
	}
	return opts
}
