package cookie

import (
	"errors"
	"net/http"
	"time"
)

// Manager writes cookies with a shared set of default attributes.
type Manager struct {
	defaults Options
}

// New creates a Manager. Cookies default to Path "/" and SameSite=Lax and are always HttpOnly.
func New(opts ...Option) *Manager {
	defaults := Options{
		Path:     "/",
		SameSite: http.SameSiteLaxMode,
	}
	return &Manager{defaults: applyOptions(defaults, opts)}
}

// Defaults returns the attributes applied to new cookies.
func (m *Manager) Defaults() Options {
	return m.defaults
}

// Build returns the cookie Set would write.
func (m *Manager) Build(name, value string, opts ...Option) *http.Cookie {
	options := applyOptions(m.defaults, opts)
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     options.Path,
		Domain:   options.Domain,
		MaxAge:   options.MaxAge,
		Secure:   options.Secure,
		HttpOnly: true,
		SameSite: options.SameSite,
	}
}

func (m *Manager) Set(w http.ResponseWriter, name, value string, opts ...Option) error {
	if name == "" {
		return ErrEmptyName
	}
	http.SetCookie(w, m.Build(name, value, opts...))
	return nil
}

func (m *Manager) Get(r *http.Request, name string) (string, error) {
	c, err := r.Cookie(name)
	if err != nil {
		if errors.Is(err, http.ErrNoCookie) {
			return "", ErrCookieNotFound
		}
		return "", err
	}
	if c.Value == "" {
		return "", ErrCookieNotFound
	}
	return c.Value, nil
}

// Expired returns a cookie that removes name from the browser.
func (m *Manager) Expired(name string) *http.Cookie {
	c := m.Build(name, "")
	c.MaxAge = -1
	c.Expires = time.Unix(0, 0)
	return c
}

func (m *Manager) Delete(w http.ResponseWriter, name string) {
	http.SetCookie(w, m.Expired(name))
}
