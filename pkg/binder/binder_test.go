package binder_test

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contentstudio/studio/pkg/binder"
)

type registerRequest struct {
	Name  string `json:"name" form:"name"`
	Email string `json:"email" form:"email"`
}

type draftRequest struct {
	Title     string   `json:"title" form:"title"`
	WordLimit int      `json:"word_limit" form:"word_limit"`
	Public    bool     `json:"public" form:"public"`
	Tags      []string `json:"tags" form:"tag"`
	Score     *float64 `json:"score" form:"score"`
	Internal  string   `json:"-" form:"-"`
}

func TestBindJSON(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest(http.MethodPost, "/register", strings.NewReader(`{"name":"Ada","email":"ada@example.com"}`))
	r.Header.Set("Content-Type", "application/json; charset=utf-8")

	var req registerRequest
	require.NoError(t, binder.Bind(r, &req))
	assert.Equal(t, registerRequest{Name: "Ada", Email: "ada@example.com"}, req)
}

func TestBindJSONErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
	}{
		{"empty", ""},
		{"malformed", `{"name":`},
		{"unknown field", `{"name":"Ada","role":"admin"}`},
		{"trailing data", `{"name":"Ada"}{"name":"Bob"}`},
		{"wrong type", `{"name":42}`},
		{"too large", `{"name":"` + strings.Repeat("a", binder.DefaultMaxJSONSize) + `"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			r.Header.Set("Content-Type", "application/json")
			var req registerRequest
			err := binder.Bind(r, &req)
			assert.ErrorIs(t, err, binder.ErrFailedToParseJSON)
			assert.True(t, binder.IsBindError(err))
		})
	}
}

func TestBindForm(t *testing.T) {
	t.Parallel()

	body := "title=Launch+post&word_limit=300&public=on&tag=a&tag=b&score=4.5&Internal=x"
	r := httptest.NewRequest(http.MethodPost, "/history", strings.NewReader(body))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var req draftRequest
	require.NoError(t, binder.Bind(r, &req))
	assert.Equal(t, "Launch post", req.Title)
	assert.Equal(t, 300, req.WordLimit)
	assert.True(t, req.Public)
	assert.Equal(t, []string{"a", "b"}, req.Tags)
	require.NotNil(t, req.Score)
	assert.InDelta(t, 4.5, *req.Score, 0.0001)
	assert.Empty(t, req.Internal)
}

func TestBindMultipart(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("name", "Ada"))
	require.NoError(t, mw.WriteField("email", "ada@example.com"))
	require.NoError(t, mw.Close())

	r := httptest.NewRequest(http.MethodPost, "/register", &buf)
	r.Header.Set("Content-Type", mw.FormDataContentType())

	var req registerRequest
	require.NoError(t, binder.Bind(r, &req))
	assert.Equal(t, "ada@example.com", req.Email)
}

func TestBindQuery(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest(http.MethodPost, "/register?name=Ada&email=ada%40example.com", nil)
	var req registerRequest
	require.NoError(t, binder.Bind(r, &req))
	assert.Equal(t, registerRequest{Name: "Ada", Email: "ada@example.com"}, req)
}

func TestBindErrors(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("x"))
	r.Header.Set("Content-Type", "text/plain")
	var req registerRequest
	assert.ErrorIs(t, binder.Bind(r, &req), binder.ErrUnsupportedMediaType)

	r = httptest.NewRequest(http.MethodPost, "/?word_limit=many", nil)
	var draft draftRequest
	err := binder.Bind(r, &draft)
	assert.ErrorIs(t, err, binder.ErrFailedToParseQuery)
	assert.Contains(t, err.Error(), "word_limit")

	r = httptest.NewRequest(http.MethodPost, "/?name=x", nil)
	assert.ErrorIs(t, binder.Query(r, req), binder.ErrInvalidTarget)
}
