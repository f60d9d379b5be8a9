// Package jwt issues and verifies session tokens and guards HTTP handlers
// that require an authenticated session.
//
// Session tokens are HS256 JWTs built with github.com/golang-jwt/jwt/v5. They
// carry only the identity claim (sub), issued-at, expiry and a token ID; there
// is no server-side session state and no revocation list, so a token is
// valid exactly while its signature verifies and the current time is before
// its expiry.
//
// # Architecture
//
//   - Service – mints and verifies session tokens (jwt.go).
//   - middleware.go – the session guard: extracts a token (Bearer header,
//     cookie, query parameter or custom header), verifies it and places the
//     subject in the request context, or denies the request.
//   - context.go – helpers for reading the token and subject from context.
//   - errors.go – sentinel errors.
//
// # Usage
//
//	svc, err := jwt.NewFromString(secret, jwt.WithTTL(2*time.Hour))
//	if err != nil {
//	    // handle error
//	}
//
//	token, err := svc.Mint("jane@example.com")
//	email, err := svc.Verify(token)
//
//	r.With(jwt.Middleware(svc)).Get("/me", func(w http.ResponseWriter, r *http.Request) {
//	    email, _ := jwt.GetSubject(r.Context())
//	    // ...
//	})
//
// # Error Handling
//
// Every verification failure is reported as ErrInvalidSession joined with the
// underlying cause, so callers can use errors.Is for both.
package jwt
