package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/ohquinton/Cerebro-sub001/internal/app"
)

func newRoutesCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "routes",
		Short: "List HTTP routes and registered gates",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := opts.load()
			if err != nil {
				return err
			}
			a, err := app.New(cfg, zerolog.Nop())
			if err != nil {
				return err
			}
			return printRoutes(cmd.OutOrStdout(), a)
		},
	}
}

func printRoutes(w io.Writer, a *app.App) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "METHOD\tPATH\tDESCRIPTION")
	for _, r := range a.Routes() {
		path := r.Path
		if r.Prefix {
			path += "*"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", r.Method, path, r.Description)
	}
	for _, p := range a.Registry.Prefixes() {
		fmt.Fprintf(tw, "GET\t%s/\tgate mount\n", p)
	}
	return tw.Flush()
}
