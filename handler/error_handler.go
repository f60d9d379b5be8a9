package handler

import (
	"fmt"
	"log/slog"
	"net/http"
	"slices"

	"github.com/contentstudio/studio/pkg/binder"
	"github.com/contentstudio/studio/pkg/i18n"
	"github.com/contentstudio/studio/pkg/logger"
	"github.com/contentstudio/studio/pkg/validator"
)

// ErrorMapper translates a domain error into an HTTPError. It reports false
// for errors it does not recognise.
type ErrorMapper func(err error) (HTTPError, bool)

// Errors renders errors as JSON envelopes with localized guidance messages.
type Errors struct {
	log     *slog.Logger
	tr      *i18n.Translator
	mappers []ErrorMapper
}

// NewErrors creates an error renderer. Mappers are tried in order before the
// built-in validation, binding and HTTPError handling.
func NewErrors(log *slog.Logger, tr *i18n.Translator, mappers ...ErrorMapper) *Errors {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Errors{log: log.With(logger.Component("http")), tr: tr, mappers: mappers}
}

// Handle implements ErrorHandler.
func (e *Errors) Handle(ctx Context, err error) {
	e.Write(ctx.ResponseWriter(), ctx.Request(), err)
}

// Write renders err for r.
func (e *Errors) Write(w http.ResponseWriter, r *http.Request, err error) {
	herr := e.Classify(err)
	lang := i18n.GetLocale(r.Context())

	detail := &ErrorDetail{Code: herr.Key, Message: e.translate(lang, "errors."+herr.Key, herr)}
	if ve := validator.ExtractValidationErrors(err); len(ve) > 0 {
		detail.Details = e.fieldMessages(lang, ve)
	}

	level := slog.LevelWarn
	if herr.Code >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	e.log.LogAttrs(r.Context(), level, "request failed",
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.String("code", herr.Key),
		logger.Status(herr.Code),
		logger.Error(err),
	)

	if werr := WriteJSON(w, herr.Code, Envelope{Error: detail}); werr != nil {
		e.log.ErrorContext(r.Context(), "failed to write error response", logger.Error(werr))
	}
}

// Classify resolves the HTTPError for err.
func (e *Errors) Classify(err error) HTTPError {
	for _, m := range e.mappers {
		if herr, ok := m(err); ok {
			return herr
		}
	}
	switch {
	case validator.IsValidationError(err):
		return ErrUnprocessable
	case binder.IsBindError(err):
		return ErrBadRequest
	}
	return AsHTTPError(err)
}

// Message translates key for the request language.
func (e *Errors) Message(r *http.Request, key string) string {
	if e.tr == nil {
		return key
	}
	return e.tr.Tc(r.Context(), key)
}

func (e *Errors) translate(lang, key string, herr HTTPError) string {
	if e.tr == nil {
		return http.StatusText(herr.Code)
	}
	return e.tr.T(lang, key)
}

func (e *Errors) fieldMessages(lang string, ve validator.ValidationErrors) map[string][]string {
	out := make(map[string][]string, len(ve))
	for _, v := range ve {
		msg := v.Message
		if e.tr != nil && v.TranslationKey != "" {
			args := make([]string, 0, len(v.TranslationValues)*2)
			keys := make([]string, 0, len(v.TranslationValues))
			for k := range v.TranslationValues {
				keys = append(keys, k)
			}
			slices.Sort(keys)
			for _, k := range keys {
				args = append(args, k, fmt.Sprint(v.TranslationValues[k]))
			}
			msg = e.tr.T(lang, v.TranslationKey, args...)
		}
		out[v.Field] = append(out[v.Field], msg)
	}
	return out
}

// NotFound renders the catalog's not_found error; mount it as the router's
// NotFound handler.
func (e *Errors) NotFound(w http.ResponseWriter, r *http.Request) {
	e.Write(w, r, ErrNotFound)
}

// MethodNotAllowed renders a 405 envelope.
func (e *Errors) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	e.Write(w, r, HTTPError{Code: http.StatusMethodNotAllowed, Key: "method_not_allowed"})
}
