// Package secrets derives independent signing keys from the single
// SECRET_KEY the server is configured with.
//
// Magic-link tokens and session tokens are signed with different derived
// keys, so a token minted for one codec never verifies in the other even if
// its claims happened to line up.
//
//	linkKey, err := secrets.Derive([]byte(cfg.SecretKey), secrets.MagicLinkKey)
//	sessionKey, err := secrets.Derive([]byte(cfg.SecretKey), secrets.SessionKey)
package secrets
