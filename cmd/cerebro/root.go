package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/ohquinton/Cerebro-sub001/internal/config"
	"github.com/ohquinton/Cerebro-sub001/internal/logging"
)

type rootOptions struct {
	configPath string
	envFiles   []string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "cerebro",
		Short:         "Hydration-gated donation and subscription pages",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "cerebro.toml", "path to a TOML config file (optional)")
	cmd.PersistentFlags().StringSliceVar(&opts.envFiles, "env-file", []string{".env"}, "dotenv files to load (optional)")

	cmd.AddCommand(
		newServeCmd(opts),
		newRoutesCmd(opts),
		newVersionCmd(),
	)
	return cmd
}

// load reads the configuration and builds the logger it describes.
func (o *rootOptions) load() (*config.Config, zerolog.Logger, error) {
	cfg, err := config.Load(o.configPath, o.envFiles...)
	if err != nil {
		return nil, zerolog.Nop(), err
	}
	logger, err := logging.New(os.Stderr, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return nil, zerolog.Nop(), err
	}
	return cfg, logger, nil
}
