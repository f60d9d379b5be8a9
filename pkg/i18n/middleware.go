package i18n

import (
	"net/http"
	"strings"
)

// maxAcceptLanguageLength bounds the Accept-Language header we parse.
const maxAcceptLanguageLength = 4096

// LangExtractor determines the language for a request.
type LangExtractor func(r *http.Request) string

// DefaultLangExtractor checks, in order, the "lang" query parameter, the
// "lang" cookie and the Accept-Language header. Explicit choices are only
// honoured when a catalog exists for them.
func DefaultLangExtractor(t *Translator) LangExtractor {
	return func(r *http.Request) string {
		if lang := strings.TrimSpace(r.URL.Query().Get("lang")); lang != "" && t.Supports(lang) {
			return strings.ToLower(lang)
		}
		if cookie, err := r.Cookie("lang"); err == nil && t.Supports(cookie.Value) {
			return strings.ToLower(cookie.Value)
		}
		if header := r.Header.Get("Accept-Language"); header != "" {
			return t.Match(header)
		}
		return t.DefaultLanguage()
	}
}

// Middleware stores the negotiated language in the request context and
// advertises it in the Content-Language header.
func Middleware(t *Translator) func(http.Handler) http.Handler {
	extract := DefaultLangExtractor(t)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			lang := extract(r)
			w.Header().Set("Content-Language", lang)
			next.ServeHTTP(w, r.WithContext(SetLocale(r.Context(), lang)))
		})
	}
}
