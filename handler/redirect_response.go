package handler

import (
	"net/http"

	"github.com/starfederation/datastar-go/datastar"
)

type redirectResponse struct {
	url     string
	code    int
	cookies []*http.Cookie
}

// Render redirects with a Location header, or through an SSE event when the
// request came from a DataStar client.
func (r redirectResponse) Render(w http.ResponseWriter, req *http.Request) error {
	for _, c := range r.cookies {
		http.SetCookie(w, c)
	}
	if IsDataStar(req) {
		return datastar.NewSSE(w, req).Redirect(r.url)
	}
	http.Redirect(w, req, r.url, r.code)
	return nil
}

// Redirect responds 302 Found.
func Redirect(url string, cookies ...*http.Cookie) Response {
	return redirectResponse{url: url, code: http.StatusFound, cookies: cookies}
}
