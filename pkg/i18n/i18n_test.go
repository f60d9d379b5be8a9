package i18n_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contentstudio/studio/pkg/i18n"
)

func catalogs() fstest.MapFS {
	return fstest.MapFS{
		"en.yaml": {Data: []byte(`
errors:
  invalid_link: "Link is invalid or expired, request a new one."
validation:
  required: "%{field} is required"
greeting: "Hello, %{name}!"
`)},
		"es.yml": {Data: []byte(`
errors:
  invalid_link: "El enlace no es válido o ha caducado."
`)},
		"README.md": {Data: []byte("ignored")},
	}
}

func newTranslator(t *testing.T) *i18n.Translator {
	t.Helper()
	tr, err := i18n.NewTranslator(context.Background(), catalogs())
	require.NoError(t, err)
	return tr
}

func TestNewTranslator(t *testing.T) {
	t.Parallel()

	tr := newTranslator(t)
	assert.Equal(t, []string{"en", "es"}, tr.SupportedLanguages())
	assert.Equal(t, "en", tr.DefaultLanguage())

	_, err := i18n.NewTranslator(context.Background(), fstest.MapFS{})
	assert.ErrorIs(t, err, i18n.ErrNoTranslations)

	_, err = i18n.NewTranslator(context.Background(), fstest.MapFS{"en.yaml": {Data: []byte("a: [")}})
	assert.ErrorIs(t, err, i18n.ErrFailedToParseYAML)

	_, err = i18n.NewTranslator(context.Background(), fstest.MapFS{"en.yaml": {Data: []byte("a: [1, 2]")}})
	assert.ErrorIs(t, err, i18n.ErrInvalidStructure)

	_, err = i18n.NewTranslator(context.Background(), catalogs(), i18n.WithDefaultLanguage("de"))
	assert.ErrorIs(t, err, i18n.ErrUnknownLanguage)
}

func TestTranslator_T(t *testing.T) {
	t.Parallel()

	tr := newTranslator(t)

	assert.Equal(t, "Link is invalid or expired, request a new one.", tr.T("en", "errors.invalid_link"))
	assert.Equal(t, "El enlace no es válido o ha caducado.", tr.T("es", "errors.invalid_link"))
	assert.Equal(t, "email is required", tr.T("es", "validation.required", "field", "email"))
	assert.Equal(t, "Hello, Jane!", tr.T("en", "greeting", "name", "Jane"))
	assert.Equal(t, "Hello, %{name}!", tr.T("en", "greeting"))
	assert.Equal(t, "errors.unknown", tr.T("en", "errors.unknown"))
	assert.Equal(t, "errors", tr.T("en", "errors"))

	assert.True(t, tr.Has("es", "errors.invalid_link"))
	assert.False(t, tr.Has("es", "validation.required"))

	ctx := i18n.SetLocale(context.Background(), "es")
	assert.Equal(t, "El enlace no es válido o ha caducado.", tr.Tc(ctx, "errors.invalid_link"))
	assert.Equal(t, "en", i18n.GetLocale(context.Background()))
}

func TestTranslator_Match(t *testing.T) {
	t.Parallel()

	tr := newTranslator(t)

	tests := map[string]string{
		"":                          "en",
		"es":                        "es",
		"es-MX,es;q=0.9":            "es",
		"fr-FR,es;q=0.8,en;q=0.5":   "es",
		"de":                        "en",
		"en-GB":                     "en",
		"not a valid header;;;q=xx": "en",
	}

	for header, want := range tests {
		assert.Equal(t, want, tr.Match(header), "header %q", header)
	}
}

func TestMiddleware(t *testing.T) {
	t.Parallel()

	tr := newTranslator(t)

	tests := []struct {
		name  string
		build func() *http.Request
		want  string
	}{
		{
			name:  "default",
			build: func() *http.Request { return httptest.NewRequest(http.MethodGet, "/", nil) },
			want:  "en",
		},
		{
			name: "accept-language",
			build: func() *http.Request {
				r := httptest.NewRequest(http.MethodGet, "/", nil)
				r.Header.Set("Accept-Language", "es-ES")
				return r
			},
			want: "es",
		},
		{
			name: "query wins",
			build: func() *http.Request {
				r := httptest.NewRequest(http.MethodGet, "/?lang=es", nil)
				r.Header.Set("Accept-Language", "en")
				return r
			},
			want: "es",
		},
		{
			name: "cookie",
			build: func() *http.Request {
				r := httptest.NewRequest(http.MethodGet, "/", nil)
				r.AddCookie(&http.Cookie{Name: "lang", Value: "es"})
				return r
			},
			want: "es",
		},
		{
			name: "unsupported query ignored",
			build: func() *http.Request {
				return httptest.NewRequest(http.MethodGet, "/?lang=de", nil)
			},
			want: "en",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var got string
			handler := i18n.Middleware(tr)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got = i18n.GetLocale(r.Context())
			}))

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, tt.build())
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want, rec.Header().Get("Content-Language"))
		})
	}
}
