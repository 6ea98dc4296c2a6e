package cerebro

import (
	"net/http"

	"github.com/a-h/templ"
)

// Render writes a templ component to the HTTP response.
//
// Sets Content-Type to text/html and renders the component using the
// request's context:
//
//	func handler(w http.ResponseWriter, r *http.Request) {
//	    cerebro.Render(w, r, page())
//	}
func Render(w http.ResponseWriter, r *http.Request, component templ.Component) error {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	return component.Render(r.Context(), w)
}

// IsHTMX returns true if the request originated from HTMX.
func IsHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}

// IsBoosted returns true if the request is a boosted navigation (hx-boost).
//
// Pages use it to answer with the content area only instead of the full
// layout.
func IsBoosted(r *http.Request) bool {
	return r.Header.Get("HX-Boosted") == "true"
}
