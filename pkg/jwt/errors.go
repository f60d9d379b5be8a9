package jwt

import "errors"

var (
	ErrMissingSigningKey = errors.New("jwt: missing signing key")
	ErrMissingSubject    = errors.New("jwt: missing subject")
	ErrMissingToken      = errors.New("jwt: missing session token")
	ErrInvalidSession    = errors.New("jwt: invalid or expired session")
)
