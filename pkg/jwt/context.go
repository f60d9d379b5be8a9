package jwt

import "context"

// contextKey is a private type for context keys to avoid collisions.
type contextKey struct{ name string }

// String returns the name of the context key.
func (c contextKey) String() string { return c.name }

var (
	tokenContextKey   = &contextKey{name: "session_token"}
	subjectContextKey = &contextKey{name: "session_subject"}
)

// SetToken stores the raw session token in the context.
func SetToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenContextKey, token)
}

// GetToken returns the raw session token from the context.
func GetToken(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(tokenContextKey).(string)
	return token, ok
}

// SetSubject stores the authenticated subject in the context.
func SetSubject(ctx context.Context, subject string) context.Context {
	return context.WithValue(ctx, subjectContextKey, subject)
}

// GetSubject returns the authenticated subject placed by the session guard.
// The second value is false for requests that did not pass the guard.
func GetSubject(ctx context.Context) (string, bool) {
	subject, ok := ctx.Value(subjectContextKey).(string)
	if !ok || subject == "" {
		return "", false
	}
	return subject, true
}

// MustSubject returns the authenticated subject or panics when the request
// did not pass the session guard.
func MustSubject(ctx context.Context) string {
	subject, ok := GetSubject(ctx)
	if !ok {
		panic("jwt: no session subject in context")
	}
	return subject
}
