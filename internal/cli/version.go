package cli

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/su-record/hi-gcloud/internal/server"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			name := color.New(color.Bold).Sprint("hi-gcloud")
			fmt.Fprintf(os.Stdout, "%s %s (%s, %s)\n", name, server.Version, server.Commit, server.Built)
		},
	}
}
