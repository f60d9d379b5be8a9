package jwt

import (
	"errors"
	"net/http"
	"strings"
)

// Verifier validates a session token and returns its subject.
type Verifier interface {
	Verify(token string) (string, error)
}

// TokenExtractorFunc defines a function that extracts a token from an HTTP request.
type TokenExtractorFunc func(r *http.Request) (string, error)

// SkipFunc defines a function that determines whether to skip validation for a request.
type SkipFunc func(r *http.Request) bool

// UnauthorizedFunc writes the response for a request without a valid session.
type UnauthorizedFunc func(w http.ResponseWriter, r *http.Request, err error)

// MiddlewareConfig configures the session guard.
type MiddlewareConfig struct {
	Verifier       Verifier           // Session token verifier
	Extractor      TokenExtractorFunc // Token extraction strategy (defaults to Bearer)
	Skip           SkipFunc           // Optional request filter to bypass validation
	OnUnauthorized UnauthorizedFunc   // Denial strategy (defaults to plain 401)
}

// Middleware guards handlers with Bearer token authentication.
func Middleware(verifier Verifier) func(next http.Handler) http.Handler {
	return MiddlewareWithConfig(MiddlewareConfig{
		Verifier:  verifier,
		Extractor: BearerTokenExtractor,
	})
}

// MiddlewareWithConfig creates the session guard with custom configuration.
// The guard never mutates state: it either passes the request through with the
// subject in context or denies it.
func MiddlewareWithConfig(config MiddlewareConfig) func(next http.Handler) http.Handler {
	if config.Verifier == nil {
		panic("jwt: MiddlewareWithConfig requires a verifier")
	}
	if config.Extractor == nil {
		config.Extractor = BearerTokenExtractor
	}
	if config.OnUnauthorized == nil {
		config.OnUnauthorized = DenyUnauthorized
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if config.Skip != nil && config.Skip(r) {
				next.ServeHTTP(w, r)
				return
			}

			tokenString, err := config.Extractor(r)
			if err != nil {
				config.OnUnauthorized(w, r, errors.Join(ErrInvalidSession, err))
				return
			}

			subject, err := config.Verifier.Verify(tokenString)
			if err != nil {
				config.OnUnauthorized(w, r, err)
				return
			}

			ctx := SetToken(r.Context(), tokenString)
			ctx = SetSubject(ctx, subject)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// DenyUnauthorized responds with 401 and a WWW-Authenticate challenge.
func DenyUnauthorized(w http.ResponseWriter, _ *http.Request, _ error) {
	w.Header().Set("WWW-Authenticate", `Bearer realm="session"`)
	http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
}

// RedirectUnauthorized sends unauthenticated browsers to the given location.
func RedirectUnauthorized(location string) UnauthorizedFunc {
	return func(w http.ResponseWriter, r *http.Request, _ error) {
		http.Redirect(w, r, location, http.StatusFound)
	}
}

// BearerTokenExtractor extracts tokens from "Authorization: Bearer <token>" headers.
func BearerTokenExtractor(r *http.Request) (string, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", ErrMissingToken
	}

	scheme, token, found := strings.Cut(authHeader, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
		return "", ErrMissingToken
	}

	return strings.TrimSpace(token), nil
}

// CookieTokenExtractor creates a token extractor for cookie-based transport.
func CookieTokenExtractor(cookieName string) TokenExtractorFunc {
	return func(r *http.Request) (string, error) {
		cookie, err := r.Cookie(cookieName)
		if err != nil || cookie.Value == "" {
			return "", ErrMissingToken
		}
		return cookie.Value, nil
	}
}

// QueryTokenExtractor creates a token extractor for URL query parameters.
// Tokens in URLs leak into logs and referrer headers; prefer headers or cookies.
func QueryTokenExtractor(paramName string) TokenExtractorFunc {
	return func(r *http.Request) (string, error) {
		token := r.URL.Query().Get(paramName)
		if token == "" {
			return "", ErrMissingToken
		}
		return token, nil
	}
}

// HeaderTokenExtractor creates a token extractor for custom headers.
func HeaderTokenExtractor(headerName string) TokenExtractorFunc {
	return func(r *http.Request) (string, error) {
		token := r.Header.Get(headerName)
		if token == "" {
			return "", ErrMissingToken
		}
		return token, nil
	}
}

// ChainExtractors returns the first token found by the given extractors.
func ChainExtractors(extractors ...TokenExtractorFunc) TokenExtractorFunc {
	return func(r *http.Request) (string, error) {
		for _, extract := range extractors {
			if token, err := extract(r); err == nil {
				return token, nil
			}
		}
		return "", ErrMissingToken
	}
}
