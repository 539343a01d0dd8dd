package server

import (
	"fmt"

	"github.com/su-record/hi-gcloud/internal/config"
)

// baseInstructions is the MCP instructions message injected into the system
// prompt. Kept concise but directive.
const baseInstructions = `hi-gcloud exposes Google Cloud operational tools: Cloud Logging, Cloud Run status and logs, Cloud SQL query validation, Storage, Secret Manager, enabled services, auth, and billing. Every tool accepts format=text|json|yaml. Read the gcloud://config resource to inspect the active per-directory configuration.`

// BuildInstructions composes the instructions from the startup config state.
// The gate re-reads the file per request; this string only orients the client.
func BuildInstructions(store *config.Store) string {
	r := store.Read()
	switch {
	case !r.Exists:
		return baseInstructions + ` No config file exists yet — call setup action=create project_id=<id> to pin a project for this directory.`
	case r.Disabled:
		return baseInstructions + ` Operations are currently disabled for this directory; tools stay hidden until setup action=enable.`
	case r.Err != "":
		return baseInstructions + fmt.Sprintf(` The config file has a problem (%s) — fix it or re-run setup.`, r.Err)
	default:
		return baseInstructions + fmt.Sprintf(` Active project: %s.`, r.Config.ProjectID)
	}
}
