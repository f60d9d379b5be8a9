// Package templates holds the HTML building blocks for transactional emails.
// Components are templ.Component values with inline styles, since most mail
// clients ignore stylesheets.
package templates

import (
	"context"
	"errors"
	"io"
	"net/url"

	"github.com/a-h/templ"
)

// ErrUnsafeURL is returned when a button link is not an absolute http(s) URL.
var ErrUnsafeURL = errors.New("templates: unsafe link URL")

// Layout wraps content in a centered container headed by the brand name.
func Layout(brand string, children ...templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<div style="max-width:600px;margin:auto;font-family:Arial,sans-serif;">`); err != nil {
			return err
		}
		if _, err := io.WriteString(w, `<h2>`+templ.EscapeString(brand)+`</h2>`); err != nil {
			return err
		}
		for _, child := range children {
			if err := child.Render(ctx, w); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</div>`)
		return err
	})
}

// Paragraph renders escaped text as a paragraph.
func Paragraph(text string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<p>`+templ.EscapeString(text)+`</p>`)
		return err
	})
}

// PrimaryButton renders a call-to-action link styled as a button.
func PrimaryButton(text, href string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		if !isHTTPURL(href) {
			return ErrUnsafeURL
		}
		_, err := io.WriteString(w,
			`<a href="`+templ.EscapeString(href)+`" style="display:inline-block;margin-top:16px;padding:12px 20px;`+
				`background:#2563eb;color:white;text-decoration:none;border-radius:6px;font-weight:600;">`+
				templ.EscapeString(text)+`</a>`)
		return err
	})
}

// Footnote renders small print below the main content.
func Footnote(text string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<p style="margin-top:24px;color:#555;font-size:12px;">`+templ.EscapeString(text)+`</p>`)
		return err
	})
}

// MagicLinkParams describes a magic-link email body.
type MagicLinkParams struct {
	Brand      string
	Lines      []string
	ButtonText string
	Link       string
	Footnote   string
}

// MagicLink composes the body of verification and login emails.
func MagicLink(p MagicLinkParams) templ.Component {
	children := make([]templ.Component, 0, len(p.Lines)+2)
	for _, line := range p.Lines {
		children = append(children, Paragraph(line))
	}
	children = append(children, PrimaryButton(p.ButtonText, p.Link))
	if p.Footnote != "" {
		children = append(children, Footnote(p.Footnote))
	}
	return Layout(p.Brand, children...)
}

func isHTTPURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
