// Package cookie builds, reads and expires HTTP cookies with shared defaults.
//
// Values are stored as given. The session cookie carries a signed token, so
// the package adds no signing or encryption of its own.
//
//	m := cookie.New(cookie.WithSecure(true), cookie.WithMaxAge(7200))
//	m.Set(w, "studio_session", token)
//	value, err := m.Get(r, "studio_session")
//	m.Delete(w, "studio_session")
package cookie
