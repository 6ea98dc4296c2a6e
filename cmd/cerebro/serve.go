package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ohquinton/Cerebro-sub001/internal/server"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	var addr, router string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := opts.load()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Addr = addr
			}
			if router != "" {
				cfg.Router = router
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return server.Run(ctx, cfg, logger)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")
	cmd.Flags().StringVar(&router, "router", "", "router adapter: echo or chi (overrides config)")
	return cmd
}
