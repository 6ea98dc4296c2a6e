// Command cerebro serves the donation and subscription pages.
package main

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

func main() {
	os.Exit(execute(os.Args[1:], os.Stdout, os.Stderr))
}

// execute runs the root command and returns the process exit code.
func execute(args []string, stdout, stderr io.Writer) int {
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	if err := cmd.Execute(); err != nil {
		logger := zerolog.New(stderr)
		logger.Error().Err(err).Msg("cerebro")
		return 1
	}
	return 0
}
