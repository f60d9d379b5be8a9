package binder

import (
	"fmt"
	"mime"
	"net/http"
)

// DefaultMaxMemory bounds multipart parsing.
const DefaultMaxMemory = 1 << 20

// Form binds url-encoded or multipart form fields, merged with the query
// string, into fields tagged `form:"name"`.
func Form(r *http.Request, v any) error {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnsupportedMediaType, err)
	}

	switch mediaType {
	case "application/x-www-form-urlencoded":
		if err := r.ParseForm(); err != nil {
			return fmt.Errorf("%w: %w", ErrFailedToParseForm, err)
		}
	case "multipart/form-data":
		if err := r.ParseMultipartForm(DefaultMaxMemory); err != nil {
			return fmt.Errorf("%w: %w", ErrFailedToParseForm, err)
		}
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedMediaType, mediaType)
	}
	return bindToStruct(v, "form", r.Form, ErrFailedToParseForm)
}

// Query binds the URL query string into fields tagged `form:"name"`.
func Query(r *http.Request, v any) error {
	return bindToStruct(v, "form", r.URL.Query(), ErrFailedToParseQuery)
}

// Bind picks a decoder from the Content-Type: JSON bodies, forms, or the
// query string when the request has no typed body.
func Bind(r *http.Request, v any) error {
	ct := r.Header.Get("Content-Type")
	if ct == "" {
		return Query(r, v)
	}
	mediaType, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnsupportedMediaType, err)
	}
	switch mediaType {
	case "application/json":
		return JSON(r, v)
	case "application/x-www-form-urlencoded", "multipart/form-data":
		return Form(r, v)
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedMediaType, mediaType)
	}
}
