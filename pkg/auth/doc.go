// Package auth implements passwordless authentication: registration, email
// verification through a magic link, magic-link login and session issuance.
//
// The package is built around Service, the flow controller. It depends on four
// collaborators, all injected:
//
//   - Storage persists accounts and enforces email uniqueness
//   - Notifier delivers purpose-specific links (see pkg/email)
//   - token.Codec mints and verifies purpose-bound magic-link tokens
//   - jwt.Service mints and verifies session tokens
//
// An optional ReplayGuard makes magic links single-use. MemoryReplayGuard is
// provided here; pkg/redis provides a shared implementation.
//
// # Flow
//
//	svc := auth.NewService(storage, notifier, tokens, sessions,
//		auth.NewLinkBuilder("https://api.example.com"),
//		auth.WithLogger(log),
//		auth.WithReplayGuard(auth.NewMemoryReplayGuard()),
//	)
//
//	// Creates an unverified account and emails a verify link.
//	err := svc.Register(ctx, "Jane Doe", "jane@example.com")
//
//	// Called from the verify link.
//	user, err := svc.VerifyEmail(ctx, tokenFromLink)
//
//	// Emails a login link to a verified account.
//	err = svc.RequestLogin(ctx, "jane@example.com")
//
//	// Called from the login link.
//	session, err := svc.VerifyLogin(ctx, tokenFromLink)
//
// # Error Handling
//
// Each failure kind is a distinct sentinel so callers can map it to one
// guidance message:
//
//   - ErrDuplicateAccount: registration for an existing email
//   - ErrAccountNotFound: no account for the email (or it vanished)
//   - ErrNotVerified: login requested before email verification
//   - ErrInvalidToken: malformed, tampered, expired or replayed link
//   - ErrWrongPurpose: a verify link used for login or vice versa
//   - ErrInvalidSession: session token rejected
//   - ErrDispatchFailure: the notifier failed; the account is not rolled back
//
// Input validation failures are returned as validator.ValidationErrors.
package auth
