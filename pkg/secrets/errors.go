package secrets

import "errors"

var (
	ErrMasterKeyTooShort   = errors.New("secrets: master key must be at least 32 bytes")
	ErrEmptyPurpose        = errors.New("secrets: key purpose is required")
	ErrKeyDerivationFailed = errors.New("secrets: key derivation failed")
)
