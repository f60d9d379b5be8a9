package token

import "errors"

var (
	ErrMissingSecret  = errors.New("token: missing signing secret")
	ErrMissingSubject = errors.New("token: missing subject")
	ErrUnknownPurpose = errors.New("token: unknown purpose")
	ErrInvalidToken   = errors.New("token: invalid or expired token")
	ErrWrongPurpose   = errors.New("token: purpose mismatch")
)
