package account

import (
	"errors"
	"net/http"

	"github.com/contentstudio/studio/handler"
	"github.com/contentstudio/studio/pkg/auth"
)

var (
	ErrAccountExists   = handler.HTTPError{Code: http.StatusConflict, Key: "account_exists"}
	ErrAccountMissing  = handler.HTTPError{Code: http.StatusNotFound, Key: "account_not_found"}
	ErrEmailUnverified = handler.HTTPError{Code: http.StatusForbidden, Key: "email_not_verified"}
	ErrInvalidLink     = handler.HTTPError{Code: http.StatusBadRequest, Key: "invalid_link"}
	ErrWrongLink       = handler.HTTPError{Code: http.StatusBadRequest, Key: "wrong_link_purpose"}
	ErrSessionInvalid  = handler.HTTPError{Code: http.StatusUnauthorized, Key: "invalid_session"}
	ErrDispatchFailed  = handler.HTTPError{Code: http.StatusBadGateway, Key: "dispatch_failed"}
)

// MapError translates auth flow errors into HTTP errors.
func MapError(err error) (handler.HTTPError, bool) {
	switch {
	case errors.Is(err, auth.ErrDuplicateAccount):
		return ErrAccountExists, true
	case errors.Is(err, auth.ErrAccountNotFound):
		return ErrAccountMissing, true
	case errors.Is(err, auth.ErrNotVerified):
		return ErrEmailUnverified, true
	case errors.Is(err, auth.ErrWrongPurpose):
		return ErrWrongLink, true
	case errors.Is(err, auth.ErrInvalidToken):
		return ErrInvalidLink, true
	case errors.Is(err, auth.ErrInvalidSession):
		return ErrSessionInvalid, true
	case errors.Is(err, auth.ErrDispatchFailure):
		return ErrDispatchFailed, true
	}
	return handler.HTTPError{}, false
}

// verifyStatus is the outcome flag passed to the frontend after an email
// verification attempt.
func verifyStatus(err error) string {
	switch {
	case err == nil:
		return "verified"
	case errors.Is(err, auth.ErrAccountNotFound):
		return "not_found"
	case errors.Is(err, auth.ErrWrongPurpose):
		return "wrong_purpose"
	case errors.Is(err, auth.ErrInvalidToken):
		return "invalid"
	}
	return "error"
}
