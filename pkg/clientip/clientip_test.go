package clientip_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/contentstudio/studio/pkg/clientip"
)

func TestGetIPIgnoresHeaders(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "198.51.100.7:4242"
	r.Header.Set("X-Forwarded-For", "203.0.113.1")
	assert.Equal(t, "198.51.100.7", clientip.GetIP(r))
}

func TestGetIPRemoteAddrForms(t *testing.T) {
	t.Parallel()

	tests := []struct {
		remote string
		want   string
	}{
		{"198.51.100.7:4242", "198.51.100.7"},
		{"[2001:db8::1]:443", "2001:db8::1"},
		{"[::ffff:192.0.2.1]:80", "192.0.2.1"},
		{"192.0.2.9", "192.0.2.9"},
		{"garbage", ""},
	}
	for _, tt := range tests {
		t.Run(tt.remote, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r.RemoteAddr = tt.remote
			assert.Equal(t, tt.want, clientip.GetIP(r))
		})
	}
}

func TestFromProxy(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		headers map[string]string
		want    string
	}{
		{
			name:    "cloudflare first",
			headers: map[string]string{"CF-Connecting-IP": "203.0.113.5", "X-Forwarded-For": "192.0.2.1"},
			want:    "203.0.113.5",
		},
		{
			name:    "first valid forwarded hop",
			headers: map[string]string{"X-Forwarded-For": "bogus, 192.0.2.1, 10.0.0.1"},
			want:    "192.0.2.1",
		},
		{
			name:    "real ip",
			headers: map[string]string{"X-Real-IP": "192.0.2.44"},
			want:    "192.0.2.44",
		},
		{
			name:    "invalid headers fall back to peer",
			headers: map[string]string{"CF-Connecting-IP": "nope", "X-Real-IP": "also nope"},
			want:    "10.1.1.1",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r.RemoteAddr = "10.1.1.1:5000"
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}
			assert.Equal(t, tt.want, clientip.FromProxy(r))
		})
	}
}

func TestMiddlewareAndKey(t *testing.T) {
	t.Parallel()

	var seen string
	next := http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		seen = clientip.Key(r)
	})

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "10.1.1.1:5000"
	r.Header.Set("X-Forwarded-For", "192.0.2.1")

	clientip.Middleware(false)(next).ServeHTTP(httptest.NewRecorder(), r)
	assert.Equal(t, "10.1.1.1", seen)

	clientip.Middleware(true)(next).ServeHTTP(httptest.NewRecorder(), r)
	assert.Equal(t, "192.0.2.1", seen)

	bare := httptest.NewRequest(http.MethodGet, "/", nil)
	bare.RemoteAddr = "10.2.2.2:1"
	assert.Equal(t, "10.2.2.2", clientip.Key(bare))
}
