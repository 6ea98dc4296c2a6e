// Package app assembles gates, pages and supporting handlers into a
// router-independent route list.
package app

import (
	"crypto/rand"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"

	cerebro "github.com/ohquinton/Cerebro-sub001"
	"github.com/ohquinton/Cerebro-sub001/internal/config"
	"github.com/ohquinton/Cerebro-sub001/internal/features/donation"
	"github.com/ohquinton/Cerebro-sub001/internal/features/subscription"
	"github.com/ohquinton/Cerebro-sub001/internal/logging"
	"github.com/ohquinton/Cerebro-sub001/internal/metrics"
	"github.com/ohquinton/Cerebro-sub001/internal/pages"
	"github.com/ohquinton/Cerebro-sub001/internal/redirects"
	"github.com/ohquinton/Cerebro-sub001/internal/theme"
)

// ComponentPath is where gate mount endpoints live.
const ComponentPath = "/_c/"

// Route is one HTTP route. Prefix routes match every path under Path.
type Route struct {
	Method      string
	Path        string
	Prefix      bool
	Handler     http.Handler
	Description string
}

// App holds the wired application.
type App struct {
	Registry     *cerebro.Registry
	Donation     *cerebro.Gate
	Subscription *cerebro.Gate
	Metrics      *metrics.Metrics
	Redirects    *redirects.Table

	logger zerolog.Logger
	routes []Route
}

// New wires the application from cfg.
func New(cfg *config.Config, logger zerolog.Logger) (*App, error) {
	key := []byte(cfg.SecretKey)
	if len(key) == 0 {
		key = make([]byte, 32)
		if _, err := rand.Read(key); err != nil {
			return nil, fmt.Errorf("app: generate secret key: %w", err)
		}
		logger.Warn().Msg("no secret_key configured, using a random key; mount URLs will not survive a restart")
	}

	a := &App{
		Registry:  cerebro.NewRegistry(key),
		Redirects: redirects.Default(),
		logger:    logger,
	}
	a.Registry.OnError = a.onError

	opts := []cerebro.Option{cerebro.WithObserver(loadLogger{logger})}
	if cfg.Metrics {
		a.Metrics = metrics.New()
		opts = append(opts, cerebro.WithObserver(a.Metrics))
	}

	a.Donation = cerebro.NewGate("donation",
		donation.Load(donation.Options{PublishableKey: cfg.PublishableKey}), opts...)
	a.Subscription = cerebro.NewSuppressedGate("subscription",
		subscription.Load(subscription.Options{PublishableKey: cfg.PublishableKey}), opts...)
	a.Registry.Add(a.Donation, a.Subscription)

	a.routes = []Route{
		{Method: http.MethodGet, Path: redirects.DonatePath, Handler: pages.Donation(a.Donation), Description: "donation page"},
		{Method: http.MethodGet, Path: redirects.SubscribePath, Handler: pages.Subscription(a.Subscription), Description: "subscription page"},
		{Method: http.MethodGet, Path: "/theme.css", Handler: theme.Handler(), Description: "theme palette"},
	}
	if a.Metrics != nil {
		a.routes = append(a.routes, Route{Method: http.MethodGet, Path: "/metrics", Handler: a.Metrics.Handler(), Description: "prometheus metrics"})
	}
	a.routes = append(a.routes, Route{Method: "*", Path: ComponentPath, Prefix: true, Handler: a.Registry.Handler(), Description: "gate mount endpoints"})

	return a, nil
}

// Routes returns the application's routes in registration order.
func (a *App) Routes() []Route {
	return a.routes
}

// Middleware returns the middleware every router applies, outermost first.
func (a *App) Middleware() []func(http.Handler) http.Handler {
	return []func(http.Handler) http.Handler{
		logging.Middleware(a.logger),
		a.Redirects.Middleware,
	}
}

func (a *App) onError(w http.ResponseWriter, r *http.Request, err error) {
	if cerebro.IsCanceled(err) {
		hlog.FromRequest(r).Debug().Err(err).Str("path", r.URL.Path).Msg("gate request abandoned")
		return
	}
	status := cerebro.StatusCode(err)
	ev := hlog.FromRequest(r).Warn()
	if status >= http.StatusInternalServerError {
		ev = hlog.FromRequest(r).Error()
	}
	ev.Err(err).Int("status", status).Str("path", r.URL.Path).Msg("gate request failed")
	cerebro.DefaultErrorHandler(w, r, err)
}

// loadLogger logs feature loads. Mounts are left to the access log.
type loadLogger struct {
	logger zerolog.Logger
}

func (l loadLogger) GateMounted(string) {}

func (l loadLogger) ChildLoaded(gate string, took time.Duration, err error) {
	if err != nil {
		l.logger.Error().Err(err).Str("gate", gate).Dur("took", took).Msg("feature load failed")
		return
	}
	l.logger.Info().Str("gate", gate).Dur("took", took).Msg("feature loaded")
}
