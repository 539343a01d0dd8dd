package tools

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/su-record/hi-gcloud/internal/ops"
)

// SetupInput is the input type for setup.
type SetupInput struct {
	Action    string `json:"action"`
	ProjectID string `json:"project_id,omitempty"`
	Region    string `json:"region,omitempty"`
	Account   string `json:"account,omitempty"`
	Format    string `json:"format,omitempty"`
}

// RegisterSetup registers the setup tool — the only state-mutating one.
func RegisterSetup(srv *mcp.Server, deps Deps) {
	mcp.AddTool(srv, &mcp.Tool{
		Name:        "setup",
		Description: "Manage the per-directory config that enables GCP tools. Actions: status, create, update, enable, disable.",
		Annotations: &mcp.ToolAnnotations{
			Title:           "Configure GCP operations",
			IdempotentHint:  true,
			DestructiveHint: boolPtr(false),
		},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input SetupInput) (*mcp.CallToolResult, any, error) {
		result, err := ops.Setup(ctx, deps.Store, deps.Runner, deps.Runtime,
			input.Action, input.ProjectID, input.Region, input.Account)
		if err != nil {
			return convertError(err), nil, nil
		}
		return formatResult(input.Format, result), nil, nil
	})
}
