package tools

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/su-record/hi-gcloud/internal/ops"
)

// AuthInput is the input type for auth_status.
type AuthInput struct {
	ShowAllAccounts bool   `json:"show_all_accounts,omitempty"`
	Format          string `json:"format,omitempty"`
}

// RegisterAuth registers the auth_status tool.
func RegisterAuth(srv *mcp.Server, deps Deps) {
	mcp.AddTool(srv, &mcp.Tool{
		Name:        "auth_status",
		Description: "Report the gcloud CLI's authentication state: active account, default project, credentialed accounts.",
		Annotations: &mcp.ToolAnnotations{
			Title:          "Check gcloud authentication",
			ReadOnlyHint:   true,
			IdempotentHint: true,
		},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input AuthInput) (*mcp.CallToolResult, any, error) {
		result, err := ops.AuthReport(ctx, deps.Runner, deps.Runtime, input.ShowAllAccounts)
		if err != nil {
			return convertError(err), nil, nil
		}
		return formatResult(input.Format, result), nil, nil
	})
}
