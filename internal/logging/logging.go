// Package logging builds the zerolog logger and the HTTP access-log
// middleware shared by both router adapters.
package logging

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"
)

// New returns a logger writing to w. format is "json" or "console".
func New(w io.Writer, level, format string) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("logging: %w", err)
	}
	if lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	switch format {
	case "console":
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	case "json", "":
	default:
		return zerolog.Nop(), fmt.Errorf("logging: unknown format %q", format)
	}

	return zerolog.New(w).Level(lvl).With().Timestamp().Logger(), nil
}

// Middleware attaches logger to each request context, assigns a request id
// (echoed in X-Request-Id) and writes one access line per request.
func Middleware(logger zerolog.Logger) func(http.Handler) http.Handler {
	access := hlog.AccessHandler(func(r *http.Request, status, size int, took time.Duration) {
		ev := hlog.FromRequest(r).Info()
		if status >= http.StatusInternalServerError {
			ev = hlog.FromRequest(r).Error()
		}
		ev.Str("method", r.Method).
			Stringer("url", r.URL).
			Int("status", status).
			Int("size", size).
			Dur("took", took).
			Bool("htmx", r.Header.Get("HX-Request") == "true").
			Msg("request")
	})
	withID := hlog.RequestIDHandler("req_id", "X-Request-Id")
	withLogger := hlog.NewHandler(logger)

	return func(next http.Handler) http.Handler {
		return withLogger(withID(access(next)))
	}
}
