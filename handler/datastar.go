package handler

import (
	"mime"
	"net/http"
	"strings"
)

// IsDataStar reports whether the request came from a DataStar client,
// which expects Server-Sent Events instead of plain redirects.
func IsDataStar(r *http.Request) bool {
	if strings.Contains(r.Header.Get("Accept"), "text/event-stream") {
		return true
	}
	return r.URL.Query().Has("datastar")
}

// WantsJSON reports whether the client asked for JSON over a redirect.
func WantsJSON(r *http.Request) bool {
	for part := range strings.SplitSeq(r.Header.Get("Accept"), ",") {
		if mt, _, err := mime.ParseMediaType(strings.TrimSpace(part)); err == nil && mt == "application/json" {
			return true
		}
	}
	return false
}
