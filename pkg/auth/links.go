package auth

import (
	"net/url"
	"strings"

	"github.com/contentstudio/studio/pkg/token"
)

// Default callback paths served by the account module.
const (
	DefaultVerifyPath = "/verify"
	DefaultLoginPath  = "/login/verify"
)

// LinkBuilder turns a purpose token into the URL sent by email.
type LinkBuilder struct {
	BaseURL    string
	VerifyPath string
	LoginPath  string
}

// NewLinkBuilder returns a LinkBuilder with the default callback paths.
func NewLinkBuilder(baseURL string) LinkBuilder {
	return LinkBuilder{
		BaseURL:    baseURL,
		VerifyPath: DefaultVerifyPath,
		LoginPath:  DefaultLoginPath,
	}
}

// Link builds {BaseURL}{path}?token={token} for the given purpose.
func (b LinkBuilder) Link(purpose token.Purpose, tok string) string {
	path := b.VerifyPath
	if purpose == token.PurposeLogin {
		path = b.LoginPath
	}
	if path == "" {
		path = DefaultVerifyPath
		if purpose == token.PurposeLogin {
			path = DefaultLoginPath
		}
	}

	return strings.TrimRight(b.BaseURL, "/") + path + "?" + url.Values{"token": {tok}}.Encode()
}
