package clientip

import (
	"net"
	"net/http"
	"net/netip"
	"strings"
)

// proxyHeaders are consulted in order when proxy headers are trusted.
var proxyHeaders = []string{"CF-Connecting-IP", "X-Real-IP"}

// GetIP returns the peer address of r. Forwarding headers are ignored since
// any client can set them; use FromProxy behind a trusted reverse proxy.
func GetIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return normalize(r.RemoteAddr)
	}
	return normalize(host)
}

// FromProxy prefers CF-Connecting-IP, then the first valid X-Forwarded-For
// hop, then X-Real-IP, and falls back to GetIP.
func FromProxy(r *http.Request) string {
	if ip := normalize(r.Header.Get(proxyHeaders[0])); ip != "" {
		return ip
	}
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		for hop := range strings.SplitSeq(forwarded, ",") {
			if ip := normalize(hop); ip != "" {
				return ip
			}
		}
	}
	if ip := normalize(r.Header.Get(proxyHeaders[1])); ip != "" {
		return ip
	}
	return GetIP(r)
}

func normalize(raw string) string {
	addr, err := netip.ParseAddr(strings.TrimSpace(raw))
	if err != nil {
		return ""
	}
	return addr.Unmap().WithZone("").String()
}
