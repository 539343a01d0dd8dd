package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/su-record/hi-gcloud/internal/config"
	"github.com/su-record/hi-gcloud/internal/content"
)

func newInitCmd() *cobra.Command {
	var project, region string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Register hi-gcloud in .mcp.json and optionally pin a project",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(".", project, region)
		},
	}
	cmd.Flags().StringVar(&project, "project", "", "project id to pin in the per-directory config")
	cmd.Flags().StringVar(&region, "region", "", "default region for the per-directory config")
	return cmd
}

// runInit writes .mcp.json from the embedded template and, when a project
// is given, an enabled per-directory config. Re-running overwrites both.
func runInit(baseDir, project, region string) error {
	arrow := color.New(color.FgCyan).SprintFunc()
	check := color.New(color.FgGreen).SprintFunc()

	fmt.Fprintf(os.Stderr, "  %s MCP config\n", arrow("→"))
	tmpl, err := content.GetTemplate("mcp-config.json")
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(baseDir, ".mcp.json"), []byte(tmpl), 0644); err != nil { //nolint:gosec // G306: config files need to be readable
		return fmt.Errorf("write .mcp.json: %w", err)
	}

	if project != "" {
		fmt.Fprintf(os.Stderr, "  %s %s\n", arrow("→"), config.FileName)
		store := config.NewOSStore(baseDir)
		enabled := true
		if err := store.Write(&config.ProjectConfig{
			Enabled:   &enabled,
			ProjectID: project,
			Region:    region,
		}); err != nil {
			return err
		}
	}

	fmt.Fprintf(os.Stderr, "  %s Init complete\n", check("✓"))
	return nil
}
