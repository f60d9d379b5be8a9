package history

import (
	"errors"
	"net/http"

	"github.com/contentstudio/studio/handler"
)

var ErrRecordMissing = handler.HTTPError{Code: http.StatusNotFound, Key: "record_not_found"}

// MapError translates history errors into HTTP errors.
func MapError(err error) (handler.HTTPError, bool) {
	if errors.Is(err, ErrRecordNotFound) {
		return ErrRecordMissing, true
	}
	return handler.HTTPError{}, false
}
