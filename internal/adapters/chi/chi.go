// Package chiadapter mounts the application's routes on a chi router.
package chiadapter

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/ohquinton/Cerebro-sub001/internal/app"
)

// New returns a chi router with routes and middleware mounted.
func New(routes []app.Route, mw ...func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	Mount(r, routes, mw...)
	return r
}

// Mount registers routes on r. It must be called before any other route is
// added, since chi rejects middleware after routes.
func Mount(r chi.Router, routes []app.Route, mw ...func(http.Handler) http.Handler) {
	r.Use(chimw.RealIP)
	r.Use(mw...)
	r.Use(chimw.Recoverer)

	for _, rt := range routes {
		path := rt.Path
		if rt.Prefix {
			path += "*"
		}
		if rt.Method == "*" {
			r.Handle(path, rt.Handler)
			continue
		}
		r.Method(rt.Method, path, rt.Handler)
		if rt.Method == http.MethodGet {
			r.Method(http.MethodHead, path, rt.Handler)
		}
	}
}
