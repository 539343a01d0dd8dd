// Package cli implements the hi-gcloud command line: serve (default),
// init, and version.
package cli

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

// Execute runs the root command. Invoked once from main.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "hi-gcloud",
		Short:         "MCP server exposing Google Cloud operational tools",
		SilenceUsage:  true,
		SilenceErrors: false,
		// Bare invocation serves — MCP clients launch the binary directly.
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}

	root.AddCommand(newServeCmd())
	root.AddCommand(newInitCmd())
	root.AddCommand(newVersionCmd())
	return root
}

// newLogger builds the stderr logger. Stdout carries MCP framing and must
// stay clean. Level comes from HI_GCLOUD_LOG (default warn).
func newLogger() *log.Logger {
	logger := log.New(os.Stderr)
	logger.SetLevel(log.WarnLevel)
	if lvl := os.Getenv("HI_GCLOUD_LOG"); lvl != "" {
		if parsed, err := log.ParseLevel(lvl); err == nil {
			logger.SetLevel(parsed)
		}
	}
	return logger
}
