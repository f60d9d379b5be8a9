package account_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contentstudio/studio/handler"
	"github.com/contentstudio/studio/locales"
	"github.com/contentstudio/studio/modules/account"
	"github.com/contentstudio/studio/pkg/auth"
	"github.com/contentstudio/studio/pkg/environment"
	"github.com/contentstudio/studio/pkg/i18n"
	"github.com/contentstudio/studio/pkg/jwt"
	"github.com/contentstudio/studio/pkg/token"
)

const frontend = "https://app.studio.test"

type outbox struct {
	mu    sync.Mutex
	links map[token.Purpose]string
	fail  error
}

func (o *outbox) Send(_ context.Context, _ string, link string, purpose token.Purpose) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.fail != nil {
		return o.fail
	}
	if o.links == nil {
		o.links = map[token.Purpose]string{}
	}
	o.links[purpose] = link
	return nil
}

func (o *outbox) token(t *testing.T, purpose token.Purpose) string {
	t.Helper()
	o.mu.Lock()
	defer o.mu.Unlock()
	link, ok := o.links[purpose]
	require.True(t, ok, "no %s link sent", purpose)
	u, err := url.Parse(link)
	require.NoError(t, err)
	return u.Query().Get("token")
}

type fixture struct {
	router   http.Handler
	outbox   *outbox
	storage  *auth.MemoryStorage
	sessions *jwt.Service
}

func newFixture(t *testing.T, transport account.SessionTransport) *fixture {
	t.Helper()

	secret := []byte("test-secret-test-secret-test-secret")
	tokens, err := token.New(secret)
	require.NoError(t, err)
	sessions, err := jwt.New(secret)
	require.NoError(t, err)

	storage := auth.NewMemoryStorage()
	box := &outbox{}
	svc := auth.NewService(storage, box, tokens, sessions,
		auth.NewLinkBuilder("https://api.studio.test"),
		auth.WithReplayGuard(auth.NewMemoryReplayGuard()),
	)

	tr, err := i18n.NewTranslator(context.Background(), locales.FS)
	require.NoError(t, err)
	errs := handler.NewErrors(nil, tr, account.MapError)

	mod, err := account.New(svc, errs, account.Config{FrontendURL: frontend + "/", Transport: transport})
	require.NoError(t, err)

	r := chi.NewRouter()
	r.Use(i18n.Middleware(tr))
	mod.Public(r)
	r.Group(func(r chi.Router) {
		r.Use(jwt.MiddlewareWithConfig(jwt.MiddlewareConfig{
			Verifier:  sessions,
			Extractor: mod.SessionExtractor(),
			OnUnauthorized: func(w http.ResponseWriter, r *http.Request, err error) {
				errs.Write(w, r, err)
			},
		}))
		mod.Protected(r)
	})

	return &fixture{router: r, outbox: box, storage: storage, sessions: sessions}
}

func (f *fixture) do(t *testing.T, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func postForm(path string, values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	body := decode(t, rec)
	detail, ok := body["error"].(map[string]any)
	require.True(t, ok, "no error in %s", rec.Body.String())
	return detail["code"].(string)
}

func (f *fixture) registerAndVerify(t *testing.T, email string) {
	t.Helper()
	rec := f.do(t, postForm("/register", url.Values{"name": {"Jane"}, "email": {email}}))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	rec = f.do(t, httptest.NewRequest(http.MethodGet, "/verify?token="+f.outbox.token(t, token.PurposeVerify), nil))
	require.Equal(t, http.StatusFound, rec.Code)
}

func TestRegister(t *testing.T) {
	t.Parallel()

	f := newFixture(t, account.TransportQuery)

	rec := f.do(t, postForm("/register", url.Values{"name": {"Jane Doe"}, "email": {"Jane@Example.com"}}))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"data":{"message":"Verification email sent"}}`, rec.Body.String())

	user, err := f.storage.GetUserByEmail(context.Background(), "jane@example.com")
	require.NoError(t, err)
	assert.False(t, user.IsVerified)

	t.Run("duplicate", func(t *testing.T) {
		rec := f.do(t, postForm("/register", url.Values{"name": {"Jane"}, "email": {"jane@example.com"}}))
		assert.Equal(t, http.StatusConflict, rec.Code)
		body := decode(t, rec)
		assert.Equal(t, "Account already exists, log in instead.", body["error"].(map[string]any)["message"])
	})

	t.Run("json body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/register", strings.NewReader(`{"name":"Ann","email":"ann@example.com"}`))
		req.Header.Set("Content-Type", "application/json")
		rec := f.do(t, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("validation", func(t *testing.T) {
		rec := f.do(t, postForm("/register", url.Values{"name": {""}, "email": {"nope"}}))
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		details := decode(t, rec)["error"].(map[string]any)["details"].(map[string]any)
		assert.Contains(t, details, "name")
		assert.Contains(t, details, "email")
	})

	t.Run("spanish guidance", func(t *testing.T) {
		req := postForm("/register", url.Values{"name": {"Jane"}, "email": {"jane@example.com"}})
		req.Header.Set("Accept-Language", "es-ES,es;q=0.9")
		rec := f.do(t, req)
		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.NotEqual(t, "Account already exists, log in instead.", decode(t, rec)["error"].(map[string]any)["message"])
	})
}

func TestRegisterDispatchFailureKeepsAccount(t *testing.T) {
	t.Parallel()

	f := newFixture(t, account.TransportQuery)
	f.outbox.fail = errors.New("smtp down")

	rec := f.do(t, postForm("/register", url.Values{"name": {"Jane"}, "email": {"jane@example.com"}}))
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Equal(t, "dispatch_failed", errorCode(t, rec))

	_, err := f.storage.GetUserByEmail(context.Background(), "jane@example.com")
	assert.NoError(t, err)
}

func TestVerifyEmailRedirects(t *testing.T) {
	t.Parallel()

	f := newFixture(t, account.TransportQuery)
	rec := f.do(t, postForm("/register", url.Values{"name": {"Jane"}, "email": {"jane@example.com"}}))
	require.Equal(t, http.StatusOK, rec.Code)
	verifyToken := f.outbox.token(t, token.PurposeVerify)

	rec = f.do(t, httptest.NewRequest(http.MethodGet, "/verify?token="+verifyToken, nil))
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, frontend+"/Verify?status=verified", rec.Header().Get("Location"))

	user, err := f.storage.GetUserByEmail(context.Background(), "jane@example.com")
	require.NoError(t, err)
	assert.True(t, user.IsVerified)

	rec = f.do(t, postForm("/login", url.Values{"email": {"jane@example.com"}}))
	require.Equal(t, http.StatusOK, rec.Code)
	loginToken := f.outbox.token(t, token.PurposeLogin)

	tests := []struct {
		name  string
		token string
		want  string
	}{
		{name: "login link", token: loginToken, want: "wrong_purpose"},
		{name: "replayed", token: verifyToken, want: "invalid"},
		{name: "garbage", token: "not-a-token", want: "invalid"},
		{name: "empty", token: "", want: "invalid"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := f.do(t, httptest.NewRequest(http.MethodGet, "/verify?token="+url.QueryEscape(tt.token), nil))
			assert.Equal(t, http.StatusFound, rec.Code)
			assert.Equal(t, frontend+"/Verify?status="+tt.want, rec.Header().Get("Location"))
		})
	}
}

func TestVerifyEmailJSON(t *testing.T) {
	t.Parallel()

	f := newFixture(t, account.TransportQuery)

	req := httptest.NewRequest(http.MethodGet, "/verify?token=broken", nil)
	req.Header.Set("Accept", "application/json")
	rec := f.do(t, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid_link", errorCode(t, rec))
}

func TestLoginBeforeVerification(t *testing.T) {
	t.Parallel()

	f := newFixture(t, account.TransportQuery)

	rec := f.do(t, postForm("/login", url.Values{"email": {"ghost@example.com"}}))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "account_not_found", errorCode(t, rec))

	rec = f.do(t, postForm("/register", url.Values{"name": {"Jane"}, "email": {"jane@example.com"}}))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(t, postForm("/login", url.Values{"email": {"jane@example.com"}}))
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "email_not_verified", errorCode(t, rec))
}

func TestLoginQueryTransport(t *testing.T) {
	t.Parallel()

	f := newFixture(t, account.TransportQuery)
	f.registerAndVerify(t, "jane@example.com")

	rec := f.do(t, postForm("/login", url.Values{"email": {"jane@example.com"}}))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"data":{"message":"Login link sent"}}`, rec.Body.String())

	loginToken := f.outbox.token(t, token.PurposeLogin)

	// A login link cannot verify an email.
	req := httptest.NewRequest(http.MethodGet, "/verify?token="+loginToken, nil)
	req.Header.Set("Accept", "application/json")
	rec = f.do(t, req)
	assert.Equal(t, "wrong_link_purpose", errorCode(t, rec))

	rec = f.do(t, httptest.NewRequest(http.MethodGet, "/login/verify?token="+loginToken, nil))
	require.Equal(t, http.StatusFound, rec.Code)
	loc, err := url.Parse(rec.Header().Get("Location"))
	require.NoError(t, err)
	assert.Equal(t, "/Verify", loc.Path)
	assert.Equal(t, "jane@example.com", loc.Query().Get("email"))
	session := loc.Query().Get("jwt")
	subject, err := f.sessions.Verify(session)
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", subject)

	t.Run("me", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+session)
		rec := f.do(t, req)
		require.Equal(t, http.StatusOK, rec.Code)
		data := decode(t, rec)["data"].(map[string]any)
		assert.Equal(t, "jane@example.com", data["email"])
		assert.Equal(t, true, data["is_verified"])
	})

	t.Run("me without session", func(t *testing.T) {
		rec := f.do(t, httptest.NewRequest(http.MethodGet, "/me", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "invalid_session", errorCode(t, rec))
	})

	t.Run("replayed login link", func(t *testing.T) {
		rec := f.do(t, httptest.NewRequest(http.MethodGet, "/login/verify?token="+loginToken, nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "invalid_link", errorCode(t, rec))
	})
}

func TestLoginCookieTransport(t *testing.T) {
	t.Parallel()

	f := newFixture(t, account.TransportCookie)
	f.registerAndVerify(t, "jane@example.com")

	rec := f.do(t, postForm("/login", url.Values{"email": {"jane@example.com"}}))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(t, httptest.NewRequest(http.MethodGet, "/login/verify?token="+f.outbox.token(t, token.PurposeLogin), nil))
	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, frontend+"/Verify?email=jane%40example.com", rec.Header().Get("Location"))

	res := rec.Result()
	defer res.Body.Close()
	require.Len(t, res.Cookies(), 1)
	c := res.Cookies()[0]
	assert.Equal(t, account.DefaultCookieName, c.Name)
	assert.True(t, c.HttpOnly)
	assert.Positive(t, c.MaxAge)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(c)
	rec = f.do(t, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(t, httptest.NewRequest(http.MethodPost, "/logout", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	res = rec.Result()
	defer res.Body.Close()
	require.Len(t, res.Cookies(), 1)
	assert.Equal(t, -1, res.Cookies()[0].MaxAge)
}

func TestLoginCookieSecureInProduction(t *testing.T) {
	t.Parallel()

	tests := []struct {
		env    environment.Environment
		secure bool
	}{
		{env: environment.Production, secure: true},
		{env: environment.Development, secure: false},
	}
	for _, tt := range tests {
		t.Run(tt.env.String(), func(t *testing.T) {
			t.Parallel()

			f := newFixture(t, account.TransportCookie)
			f.router = environment.Middleware(tt.env)(f.router)
			f.registerAndVerify(t, "jane@example.com")

			rec := f.do(t, postForm("/login", url.Values{"email": {"jane@example.com"}}))
			require.Equal(t, http.StatusOK, rec.Code)

			rec = f.do(t, httptest.NewRequest(http.MethodGet, "/login/verify?token="+f.outbox.token(t, token.PurposeLogin), nil))
			require.Equal(t, http.StatusFound, rec.Code)

			res := rec.Result()
			defer res.Body.Close()
			require.Len(t, res.Cookies(), 1)
			assert.Equal(t, tt.secure, res.Cookies()[0].Secure)
		})
	}
}

func TestLoginVerifyJSON(t *testing.T) {
	t.Parallel()

	f := newFixture(t, account.TransportQuery)
	f.registerAndVerify(t, "jane@example.com")
	rec := f.do(t, postForm("/login", url.Values{"email": {"jane@example.com"}}))
	require.Equal(t, http.StatusOK, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/login/verify?token="+f.outbox.token(t, token.PurposeLogin), nil)
	req.Header.Set("Accept", "application/json")
	rec = f.do(t, req)
	require.Equal(t, http.StatusOK, rec.Code)
	data := decode(t, rec)["data"].(map[string]any)
	assert.Equal(t, "jane@example.com", data["email"])
	assert.NotEmpty(t, data["token"])
	assert.NotEmpty(t, data["expires_at"])
}

func TestNewRequiresFrontendURL(t *testing.T) {
	t.Parallel()

	_, err := account.New(nil, handler.NewErrors(nil, nil), account.Config{})
	assert.ErrorIs(t, err, account.ErrMissingFrontendURL)

	_, err = account.New(nil, handler.NewErrors(nil, nil), account.Config{FrontendURL: frontend, Transport: "header"})
	assert.ErrorIs(t, err, account.ErrInvalidTransport)
}

func TestMapError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err  error
		want handler.HTTPError
	}{
		{auth.ErrDuplicateAccount, account.ErrAccountExists},
		{auth.ErrAccountNotFound, account.ErrAccountMissing},
		{auth.ErrNotVerified, account.ErrEmailUnverified},
		{auth.ErrInvalidToken, account.ErrInvalidLink},
		{auth.ErrWrongPurpose, account.ErrWrongLink},
		{auth.ErrInvalidSession, account.ErrSessionInvalid},
		{errors.Join(auth.ErrDispatchFailure, errors.New("boom")), account.ErrDispatchFailed},
	}
	for _, tt := range tests {
		got, ok := account.MapError(tt.err)
		assert.True(t, ok, tt.err.Error())
		assert.Equal(t, tt.want, got)
	}

	_, ok := account.MapError(errors.New("other"))
	assert.False(t, ok)
}
