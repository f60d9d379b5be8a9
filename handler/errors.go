package handler

import (
	"errors"
	"net/http"
)

// ErrNilResponse indicates a handler returned nil instead of a Response.
var ErrNilResponse = errors.New("handler returned nil response")

// HTTPError pairs a status code with a stable machine-readable key.
// The key doubles as the catalog entry "errors.<key>" for the user message.
type HTTPError struct {
	Code int
	Key  string
}

func (e HTTPError) Error() string {
	return e.Key
}

var (
	ErrBadRequest      = HTTPError{Code: http.StatusBadRequest, Key: "bad_request"}
	ErrNotFound        = HTTPError{Code: http.StatusNotFound, Key: "not_found"}
	ErrUnprocessable   = HTTPError{Code: http.StatusUnprocessableEntity, Key: "validation_error"}
	ErrTooManyRequests = HTTPError{Code: http.StatusTooManyRequests, Key: "too_many_requests"}
	ErrInternal        = HTTPError{Code: http.StatusInternalServerError, Key: "internal"}
)

// AsHTTPError returns the HTTPError in err's chain, or ErrInternal.
func AsHTTPError(err error) HTTPError {
	var herr HTTPError
	if errors.As(err, &herr) {
		return herr
	}
	return ErrInternal
}
