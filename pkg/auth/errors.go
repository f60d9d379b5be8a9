package auth

import (
	"errors"

	"github.com/contentstudio/studio/pkg/jwt"
	"github.com/contentstudio/studio/pkg/token"
)

// Storage errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
)

// Flow errors. Each maps to exactly one guidance message at the HTTP layer.
var (
	ErrDuplicateAccount = errors.New("account already exists")
	ErrAccountNotFound  = errors.New("account not found")
	ErrNotVerified      = errors.New("email not verified")
	ErrDispatchFailure  = errors.New("failed to dispatch link")

	ErrInvalidToken   = token.ErrInvalidToken
	ErrWrongPurpose   = token.ErrWrongPurpose
	ErrInvalidSession = jwt.ErrInvalidSession
)

// Magic link errors
var (
	ErrTokenAlreadyUsed = errors.New("token already used")
)
