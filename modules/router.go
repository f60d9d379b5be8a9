// Package modules assembles the HTTP application from the feature modules.
package modules

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/contentstudio/studio/handler"
	"github.com/contentstudio/studio/modules/account"
	"github.com/contentstudio/studio/modules/history"
	"github.com/contentstudio/studio/pkg/clientip"
	"github.com/contentstudio/studio/pkg/httpserver"
	"github.com/contentstudio/studio/pkg/i18n"
	"github.com/contentstudio/studio/pkg/jwt"
	"github.com/contentstudio/studio/pkg/logger"
	"github.com/contentstudio/studio/pkg/ratelimiter"
	"github.com/contentstudio/studio/pkg/requestid"
)

// RouterOptions wires the modules into one handler. Account, Errors,
// Translator and Sessions are required.
type RouterOptions struct {
	Logger         *slog.Logger
	Translator     *i18n.Translator
	Errors         *handler.Errors
	Sessions       jwt.Verifier
	Account        *account.Module
	History        *history.Module
	AllowedOrigins []string
	TrustProxy     bool
	Readiness      map[string]httpserver.Check
	ReadyTimeout   time.Duration
}

// Router builds the application handler:
// request ID, request logging, client IP, CORS and language detection run
// for every route; /me and /history/* additionally require a session.
func Router(opts RouterOptions) http.Handler {
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	if opts.ReadyTimeout <= 0 {
		opts.ReadyTimeout = 2 * time.Second
	}

	r := chi.NewRouter()
	r.Use(
		requestid.Middleware,
		logger.Middleware(log),
		clientip.Middleware(opts.TrustProxy),
		cors.Handler(cors.Options{
			AllowedOrigins:   opts.AllowedOrigins,
			AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
			AllowedHeaders:   []string{"Accept", "Accept-Language", "Authorization", "Content-Type", requestid.Header},
			ExposedHeaders:   []string{requestid.Header, "Retry-After", "X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"},
			AllowCredentials: true,
			MaxAge:           300,
		}),
		i18n.Middleware(opts.Translator),
	)
	r.NotFound(opts.Errors.NotFound)
	r.MethodNotAllowed(opts.Errors.MethodNotAllowed)

	r.Get("/", httpserver.LivenessHandler())
	r.Get("/health/live", httpserver.LivenessHandler())
	r.Get("/health/ready", httpserver.ReadinessHandler(log, opts.ReadyTimeout, opts.Readiness))

	opts.Account.Public(r)

	r.Group(func(r chi.Router) {
		r.Use(jwt.MiddlewareWithConfig(jwt.MiddlewareConfig{
			Verifier:       opts.Sessions,
			Extractor:      opts.Account.SessionExtractor(),
			OnUnauthorized: opts.Errors.Write,
		}))
		opts.Account.Protected(r)
		if opts.History != nil {
			opts.History.Routes(r)
		}
	})

	return r
}

// LinkRequestLimiter limits magic-link requests per client IP and renders
// denials with the guidance catalog.
func LinkRequestLimiter(limiter ratelimiter.RateLimiter, errs *handler.Errors) func(http.Handler) http.Handler {
	return ratelimiter.Middleware(ratelimiter.MiddlewareConfig{
		Limiter: limiter,
		Key:     clientip.Key,
		OnDeny: func(w http.ResponseWriter, r *http.Request, _ *ratelimiter.Result) {
			errs.Write(w, r, handler.ErrTooManyRequests)
		},
		OnError: errs.Write,
	})
}
