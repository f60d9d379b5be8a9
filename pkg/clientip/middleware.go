package clientip

import "net/http"

// Middleware resolves the client IP once per request and stores it in the
// context. trustProxy selects FromProxy over GetIP.
func Middleware(trustProxy bool) func(http.Handler) http.Handler {
	resolve := GetIP
	if trustProxy {
		resolve = FromProxy
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := SetIPToContext(r.Context(), resolve(r))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Key is a rate limiter key function: the IP from context, else the peer address.
func Key(r *http.Request) string {
	if ip := GetIPFromContext(r.Context()); ip != "" {
		return ip
	}
	return GetIP(r)
}
