package secrets

import (
	"crypto/sha256"
	"errors"
	"io"

	"golang.org/x/crypto/hkdf"
)

const (
	// KeySize is the length of every derived key.
	KeySize = 32

	// MinMasterKeySize is the shortest accepted master secret.
	MinMasterKeySize = 32

	// infoPrefix separates our derivations from any other HKDF use of the
	// same master secret.
	infoPrefix = "contentstudio/v1/"
)

// Key purposes. Each yields an independent key from the same master secret.
const (
	MagicLinkKey = "magic-link"
	SessionKey   = "session"
)

// Derive expands master into a KeySize key bound to purpose with
// HKDF-SHA256. The same inputs always yield the same key.
func Derive(master []byte, purpose string) ([]byte, error) {
	if len(master) < MinMasterKeySize {
		return nil, ErrMasterKeyTooShort
	}
	if purpose == "" {
		return nil, ErrEmptyPurpose
	}

	r := hkdf.New(sha256.New, master, nil, []byte(infoPrefix+purpose))
	key := make([]byte, KeySize)
	if _, err := io.ReadFull(r, key); err != nil {
		return nil, errors.Join(ErrKeyDerivationFailed, err)
	}
	return key, nil
}

// MustDerive is Derive for startup code with a validated master secret.
func MustDerive(master []byte, purpose string) []byte {
	key, err := Derive(master, purpose)
	if err != nil {
		panic(err)
	}
	return key
}
