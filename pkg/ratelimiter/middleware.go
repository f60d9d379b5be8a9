package ratelimiter

import (
	"math"
	"net/http"
	"strconv"
)

// KeyFunc extracts the limiting key from a request.
type KeyFunc func(r *http.Request) string

// DeniedHandler renders the response for a limited request. Headers for the
// limit are already set when it runs.
type DeniedHandler func(w http.ResponseWriter, r *http.Request, res *Result)

// ErrorHandler renders the response when the store fails.
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)

// MiddlewareConfig configures Middleware.
type MiddlewareConfig struct {
	Limiter RateLimiter
	Key     KeyFunc
	OnDeny  DeniedHandler
	OnError ErrorHandler
}

// Middleware limits requests per key and sets X-RateLimit-* headers.
// Requests whose key is empty pass through unlimited.
func Middleware(cfg MiddlewareConfig) func(http.Handler) http.Handler {
	if cfg.Limiter == nil || cfg.Key == nil {
		panic("ratelimiter: Middleware requires Limiter and Key")
	}
	if cfg.OnDeny == nil {
		cfg.OnDeny = func(w http.ResponseWriter, _ *http.Request, _ *Result) {
			http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
		}
	}
	if cfg.OnError == nil {
		cfg.OnError = func(w http.ResponseWriter, _ *http.Request, _ error) {
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := cfg.Key(r)
			if key == "" {
				next.ServeHTTP(w, r)
				return
			}

			res, err := cfg.Limiter.Allow(r.Context(), key)
			if err != nil {
				cfg.OnError(w, r, err)
				return
			}

			h := w.Header()
			h.Set("X-RateLimit-Limit", strconv.Itoa(res.Limit))
			h.Set("X-RateLimit-Remaining", strconv.Itoa(max(0, res.Remaining)))
			h.Set("X-RateLimit-Reset", strconv.FormatInt(res.ResetAt.Unix(), 10))

			if !res.Allowed() {
				h.Set("Retry-After", strconv.Itoa(int(math.Ceil(res.RetryAfter().Seconds()))))
				cfg.OnDeny(w, r, res)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
