// Package echoadapter mounts the application's routes on an Echo instance.
//
//	e := echo.New()
//	echoadapter.Mount(e, a.Routes(), a.Middleware()...)
package echoadapter

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/ohquinton/Cerebro-sub001/internal/app"
)

// New returns an Echo instance with routes and middleware mounted.
func New(routes []app.Route, mw ...func(http.Handler) http.Handler) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	Mount(e, routes, mw...)
	return e
}

// Mount registers routes on e. mw is applied outermost first, before
// routing, so redirects and access logging also see unmatched paths.
func Mount(e *echo.Echo, routes []app.Route, mw ...func(http.Handler) http.Handler) {
	for _, m := range mw {
		e.Pre(echo.WrapMiddleware(m))
	}
	e.Use(middleware.Recover())

	for _, r := range routes {
		h := echo.WrapHandler(r.Handler)
		path := r.Path
		if r.Prefix {
			path += "*"
		}
		if r.Method == "*" {
			e.Any(path, h)
			continue
		}
		e.Add(r.Method, path, h)
		if r.Method == http.MethodGet {
			e.Add(http.MethodHead, path, h)
		}
	}
}
