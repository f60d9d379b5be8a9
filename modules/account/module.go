package account

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/contentstudio/studio/handler"
	"github.com/contentstudio/studio/pkg/auth"
	"github.com/contentstudio/studio/pkg/binder"
	"github.com/contentstudio/studio/pkg/cookie"
	"github.com/contentstudio/studio/pkg/environment"
	"github.com/contentstudio/studio/pkg/jwt"
	"github.com/contentstudio/studio/pkg/logger"
)

// Service is the auth flow the module exposes over HTTP.
type Service interface {
	Register(ctx context.Context, name, email string) error
	VerifyEmail(ctx context.Context, token string) (*auth.User, error)
	RequestLogin(ctx context.Context, email string) error
	VerifyLogin(ctx context.Context, token string) (*auth.Session, error)
	Account(ctx context.Context, email string) (*auth.User, error)
}

// Module serves registration, verification, login and the current account.
type Module struct {
	svc     Service
	cfg     Config
	errs    *handler.Errors
	cookies *cookie.Manager
	limiter func(http.Handler) http.Handler
	log     *slog.Logger
}

// Option configures a Module.
type Option func(*Module)

// WithCookies sets the manager used for the cookie transport.
func WithCookies(m *cookie.Manager) Option {
	return func(mod *Module) { mod.cookies = m }
}

// WithLinkRequestLimiter guards POST /register and POST /login.
func WithLinkRequestLimiter(mw func(http.Handler) http.Handler) Option {
	return func(mod *Module) { mod.limiter = mw }
}

// WithLogger sets the module logger.
func WithLogger(log *slog.Logger) Option {
	return func(mod *Module) {
		if log != nil {
			mod.log = log
		}
	}
}

// New creates the module. errs renders failures with guidance messages and
// must include MapError.
func New(svc Service, errs *handler.Errors, cfg Config, opts ...Option) (*Module, error) {
	cfg, err := cfg.withDefaults()
	if err != nil {
		return nil, err
	}
	m := &Module{
		svc:  svc,
		cfg:  cfg,
		errs: errs,
		log:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.cookies == nil {
		m.cookies = cookie.New()
	}
	m.log = m.log.With(logger.Component("account"))
	return m, nil
}

// Public mounts the unauthenticated routes.
func (m *Module) Public(r chi.Router) {
	limited := r
	if m.limiter != nil {
		limited = r.With(m.limiter)
	}
	limited.Post("/register", wrap(m, m.register))
	limited.Post("/login", wrap(m, m.requestLogin))

	r.Get("/verify", wrap(m, m.verifyEmail))
	r.Get("/login/verify", wrap(m, m.verifyLogin))
	r.Post("/logout", handler.Wrap(m.logout, handler.WithErrorHandler[struct{}](m.errs.Handle)))
}

// Protected mounts the routes that need a session. The caller installs the
// session guard.
func (m *Module) Protected(r chi.Router) {
	r.Get("/me", handler.Wrap(m.me, handler.WithErrorHandler[struct{}](m.errs.Handle)))
}

// SessionExtractor reads the session token the way this module delivers it:
// Bearer header first, then the session cookie when cookie transport is on.
func (m *Module) SessionExtractor() jwt.TokenExtractorFunc {
	if m.cfg.Transport == TransportCookie {
		return jwt.ChainExtractors(jwt.BearerTokenExtractor, jwt.CookieTokenExtractor(m.cfg.CookieName))
	}
	return jwt.BearerTokenExtractor
}

func wrap[R any](m *Module, h handler.HandlerFunc[R]) http.HandlerFunc {
	return handler.Wrap(h,
		handler.WithBinders[R](binder.Bind),
		handler.WithErrorHandler[R](m.errs.Handle),
	)
}

type registerRequest struct {
	Name  string `form:"name" json:"name"`
	Email string `form:"email" json:"email"`
}

func (m *Module) register(ctx handler.Context, req registerRequest) handler.Response {
	if err := m.svc.Register(ctx, req.Name, req.Email); err != nil {
		return handler.Fail(err)
	}
	return handler.Message(m.errs.Message(ctx.Request(), "messages.verification_sent"))
}

type loginRequest struct {
	Email string `form:"email" json:"email"`
}

func (m *Module) requestLogin(ctx handler.Context, req loginRequest) handler.Response {
	if err := m.svc.RequestLogin(ctx, req.Email); err != nil {
		return handler.Fail(err)
	}
	return handler.Message(m.errs.Message(ctx.Request(), "messages.login_link_sent"))
}

type tokenRequest struct {
	Token string `form:"token" json:"token"`
}

func (m *Module) verifyEmail(ctx handler.Context, req tokenRequest) handler.Response {
	user, err := m.svc.VerifyEmail(ctx, req.Token)
	if handler.WantsJSON(ctx.Request()) {
		if err != nil {
			return handler.Fail(err)
		}
		return handler.JSON(newUserView(user))
	}

	status := verifyStatus(err)
	if status == "error" {
		m.log.ErrorContext(ctx, "email verification failed", logger.Error(err))
	}
	return handler.Redirect(m.cfg.landing(url.Values{"status": {status}}))
}

// sessionView is the JSON answer to a login verification.
type sessionView struct {
	Token     string    `json:"token,omitempty"`
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (m *Module) verifyLogin(ctx handler.Context, req tokenRequest) handler.Response {
	sess, err := m.svc.VerifyLogin(ctx, req.Token)
	if err != nil {
		return handler.Fail(err)
	}

	params := url.Values{"email": {sess.Email}}
	view := sessionView{Email: sess.Email, ExpiresAt: sess.ExpiresAt}
	var cookies []*http.Cookie

	switch m.cfg.Transport {
	case TransportCookie:
		maxAge := int(time.Until(sess.ExpiresAt) / time.Second)
		opts := []cookie.Option{cookie.WithMaxAge(max(maxAge, 1))}
		if environment.IsProduction(ctx) {
			opts = append(opts, cookie.WithSecure(true))
		}
		cookies = append(cookies, m.cookies.Build(m.cfg.CookieName, sess.Token, opts...))
	default:
		params.Set("jwt", sess.Token)
		view.Token = sess.Token
	}

	if handler.WantsJSON(ctx.Request()) {
		for _, c := range cookies {
			http.SetCookie(ctx.ResponseWriter(), c)
		}
		return handler.JSON(view)
	}
	return handler.Redirect(m.cfg.landing(params), cookies...)
}

func (m *Module) logout(ctx handler.Context, _ struct{}) handler.Response {
	if m.cfg.Transport == TransportCookie {
		m.cookies.Delete(ctx.ResponseWriter(), m.cfg.CookieName)
	}
	return handler.Empty()
}

// userView is the public shape of an account.
type userView struct {
	ID         uuid.UUID  `json:"id"`
	Email      string     `json:"email"`
	Name       string     `json:"name"`
	IsVerified bool       `json:"is_verified"`
	CreatedAt  time.Time  `json:"created_at"`
	VerifiedAt *time.Time `json:"verified_at,omitempty"`
}

func newUserView(u *auth.User) userView {
	return userView{
		ID:         u.ID,
		Email:      u.Email,
		Name:       u.Name,
		IsVerified: u.IsVerified,
		CreatedAt:  u.CreatedAt,
		VerifiedAt: u.VerifiedAt,
	}
}

func (m *Module) me(ctx handler.Context, _ struct{}) handler.Response {
	email, ok := jwt.GetSubject(ctx)
	if !ok {
		return handler.Fail(auth.ErrInvalidSession)
	}
	user, err := m.svc.Account(ctx, email)
	if err != nil {
		return handler.Fail(err)
	}
	return handler.JSON(newUserView(user))
}
