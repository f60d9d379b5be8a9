package jwt_test

import (
	"strings"
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contentstudio/studio/pkg/jwt"
)

const testKey = "test-session-key-32-bytes-long!!"

var mintedAt = time.Date(2025, time.June, 1, 8, 0, 0, 0, time.UTC)

func newService(t *testing.T, opts ...jwt.Option) *jwt.Service {
	t.Helper()
	svc, err := jwt.NewFromString(testKey, opts...)
	require.NoError(t, err)
	return svc
}

func TestNew(t *testing.T) {
	t.Parallel()

	_, err := jwt.New(nil)
	assert.ErrorIs(t, err, jwt.ErrMissingSigningKey)

	_, err = jwt.NewFromString("")
	assert.ErrorIs(t, err, jwt.ErrMissingSigningKey)

	svc := newService(t)
	assert.Equal(t, 2*time.Hour, svc.TTL())
	assert.Equal(t, time.Hour, newService(t, jwt.WithTTL(time.Hour)).TTL())
	assert.Equal(t, jwt.DefaultTTL, newService(t, jwt.WithTTL(-time.Hour)).TTL())
}

func TestService_MintAndVerify(t *testing.T) {
	t.Parallel()

	svc := newService(t)

	token, err := svc.Mint("jane@x.com")
	require.NoError(t, err)
	assert.Len(t, strings.Split(token, "."), 3)

	subject, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "jane@x.com", subject)

	claims, err := svc.Parse(token)
	require.NoError(t, err)
	assert.NotEmpty(t, claims.ID)
	assert.NotNil(t, claims.IssuedAt)
}

func TestService_MintRejectsEmptySubject(t *testing.T) {
	t.Parallel()

	_, err := newService(t).Mint("")
	assert.ErrorIs(t, err, jwt.ErrMissingSubject)
}

func TestService_Lifetime(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		elapsed time.Duration
		valid   bool
	}{
		{name: "fresh", elapsed: 0, valid: true},
		{name: "one hour in", elapsed: time.Hour, valid: true},
		{name: "last second", elapsed: 2*time.Hour - time.Second, valid: true},
		{name: "at expiry", elapsed: 2 * time.Hour},
		{name: "past expiry", elapsed: 2*time.Hour + time.Minute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			now := mintedAt
			svc := newService(t, jwt.WithClock(func() time.Time { return now }))

			token, expiresAt, err := svc.MintWithExpiry("jane@x.com")
			require.NoError(t, err)
			assert.True(t, mintedAt.Add(2*time.Hour).Equal(expiresAt))

			now = mintedAt.Add(tt.elapsed)
			subject, err := svc.Verify(token)
			if tt.valid {
				require.NoError(t, err)
				assert.Equal(t, "jane@x.com", subject)
				return
			}
			assert.ErrorIs(t, err, jwt.ErrInvalidSession)
			assert.ErrorIs(t, err, gojwt.ErrTokenExpired)
		})
	}
}

func TestService_RejectsInvalidTokens(t *testing.T) {
	t.Parallel()

	svc := newService(t)
	valid, err := svc.Mint("jane@x.com")
	require.NoError(t, err)

	foreign, err := newServiceWithKey(t, "another-key").Mint("jane@x.com")
	require.NoError(t, err)

	hs384, err := gojwt.NewWithClaims(gojwt.SigningMethodHS384, gojwt.RegisteredClaims{
		Subject:   "jane@x.com",
		ExpiresAt: gojwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString([]byte(testKey))
	require.NoError(t, err)

	noSubject, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, gojwt.RegisteredClaims{
		ExpiresAt: gojwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString([]byte(testKey))
	require.NoError(t, err)

	sigStart := strings.LastIndex(valid, ".") + 1
	tampered := valid[:sigStart] + flip(valid[sigStart]) + valid[sigStart+1:]

	tests := map[string]string{
		"empty":             "",
		"garbage":           "garbage",
		"foreign key":       foreign,
		"other algorithm":   hs384,
		"missing subject":   noSubject,
		"tampered":          tampered,
		"dropped signature": valid[:sigStart-1],
	}

	for name, token := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			subject, err := svc.Verify(token)
			assert.ErrorIs(t, err, jwt.ErrInvalidSession)
			assert.Empty(t, subject)
		})
	}
}

func TestService_Issuer(t *testing.T) {
	t.Parallel()

	a := newService(t, jwt.WithIssuer("studio"))
	b := newService(t, jwt.WithIssuer("elsewhere"))

	token, err := b.Mint("jane@x.com")
	require.NoError(t, err)

	_, err = a.Verify(token)
	assert.ErrorIs(t, err, jwt.ErrInvalidSession)
}

func newServiceWithKey(t *testing.T, key string) *jwt.Service {
	t.Helper()
	svc, err := jwt.NewFromString(key)
	require.NoError(t, err)
	return svc
}

func flip(c byte) string {
	if c == 'A' {
		return "B"
	}
	return "A"
}
