// Package server runs the HTTP server with graceful shutdown.
package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	chiadapter "github.com/ohquinton/Cerebro-sub001/internal/adapters/chi"
	echoadapter "github.com/ohquinton/Cerebro-sub001/internal/adapters/echo"
	"github.com/ohquinton/Cerebro-sub001/internal/app"
	"github.com/ohquinton/Cerebro-sub001/internal/config"
)

// Handler mounts a's routes on the router named by router.
func Handler(router string, a *app.App) (http.Handler, error) {
	switch router {
	case config.RouterEcho:
		return echoadapter.New(a.Routes(), a.Middleware()...), nil
	case config.RouterChi:
		return chiadapter.New(a.Routes(), a.Middleware()...), nil
	default:
		return nil, fmt.Errorf("server: unknown router %q", router)
	}
}

// Run serves until ctx is cancelled, then drains in-flight requests for up
// to cfg.ShutdownTimeout.
func Run(ctx context.Context, cfg *config.Config, logger zerolog.Logger) error {
	a, err := app.New(cfg, logger)
	if err != nil {
		return err
	}
	h, err := Handler(cfg.Router, a)
	if err != nil {
		return err
	}

	ln, err := net.Listen("tcp", cfg.Addr)
	if err != nil {
		return fmt.Errorf("server: listen %s: %w", cfg.Addr, err)
	}
	return serve(ctx, ln, h, cfg.ShutdownTimeout, logger.With().Str("router", cfg.Router).Logger())
}

func serve(ctx context.Context, ln net.Listener, h http.Handler, shutdownTimeout time.Duration, logger zerolog.Logger) error {
	srv := &http.Server{
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
		ErrorLog:          log.New(logger.With().Str("component", "http").Logger(), "", 0),
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errc := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", ln.Addr().String()).Msg("server listening")
		errc <- srv.Serve(ln)
	}()

	select {
	case err := <-errc:
		return fmt.Errorf("server: %w", err)
	case <-ctx.Done():
	}

	logger.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server: shutdown: %w", err)
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server: %w", err)
	}
	logger.Info().Msg("server stopped")
	return nil
}
