// Package token mints and verifies short-lived, purpose-bound tokens for
// magic links.
//
// Tokens are HS256-signed JWTs carrying the subject (an email address), the
// declared purpose, issued-at and expiry timestamps and a random token ID.
// A token is accepted only when the signature verifies, the current time is
// strictly before the expiry and the embedded purpose equals the purpose the
// caller expects. Base64 segments are decoded in strict mode, so altering any
// single character of a token makes it fail verification.
//
// # Usage
//
//	codec, err := token.New([]byte(secret), token.WithTTL(10*time.Minute))
//	if err != nil {
//	    return err
//	}
//
//	tok, err := codec.Mint("jane@example.com", token.PurposeVerify)
//
//	email, err := codec.Verify(tok, token.PurposeVerify)
//	switch {
//	case errors.Is(err, token.ErrWrongPurpose):
//	    // a login link was presented to the verification endpoint
//	case errors.Is(err, token.ErrInvalidToken):
//	    // malformed, tampered or expired
//	}
//
// The codec holds no state besides the key and the clock, and is safe for
// concurrent use.
package token
