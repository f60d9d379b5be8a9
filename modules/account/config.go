package account

import (
	"errors"
	"net/url"
	"strings"
)

// SessionTransport selects how a fresh session token reaches the frontend.
type SessionTransport string

const (
	// TransportQuery appends the token to the frontend redirect URL.
	// Kept for frontends that read the token from the address bar.
	TransportQuery SessionTransport = "query"
	// TransportCookie stores the token in an HttpOnly cookie.
	TransportCookie SessionTransport = "cookie"
)

// Valid reports whether t is a known transport.
func (t SessionTransport) Valid() bool {
	return t == TransportQuery || t == TransportCookie
}

const (
	DefaultLandingPath = "/Verify"
	DefaultCookieName  = "studio_session"
)

var (
	ErrMissingFrontendURL = errors.New("account: frontend url is required")
	ErrInvalidTransport   = errors.New("account: unknown session transport")
)

// Config controls redirects and session delivery.
type Config struct {
	FrontendURL string
	LandingPath string
	Transport   SessionTransport
	CookieName  string
}

func (c Config) withDefaults() (Config, error) {
	c.FrontendURL = strings.TrimRight(c.FrontendURL, "/")
	if c.FrontendURL == "" {
		return c, ErrMissingFrontendURL
	}
	if _, err := url.Parse(c.FrontendURL); err != nil {
		return c, errors.Join(ErrMissingFrontendURL, err)
	}
	if c.LandingPath == "" {
		c.LandingPath = DefaultLandingPath
	}
	if c.Transport == "" {
		c.Transport = TransportQuery
	}
	if !c.Transport.Valid() {
		return c, ErrInvalidTransport
	}
	if c.CookieName == "" {
		c.CookieName = DefaultCookieName
	}
	return c, nil
}

// landing returns the frontend landing URL with params in its query string.
func (c Config) landing(params url.Values) string {
	u := c.FrontendURL + c.LandingPath
	if len(params) == 0 {
		return u
	}
	return u + "?" + params.Encode()
}
