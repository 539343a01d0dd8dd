package tools

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/su-record/hi-gcloud/internal/ops"
)

// ServicesInput is the input type for services_list.
type ServicesInput struct {
	ProjectID string `json:"project_id,omitempty"`
	Filter    string `json:"filter,omitempty"`
	Format    string `json:"format,omitempty"`
}

// RegisterServices registers the services_list tool.
func RegisterServices(srv *mcp.Server, deps Deps) {
	mcp.AddTool(srv, &mcp.Tool{
		Name:        "services_list",
		Description: "List a project's enabled API services, optionally narrowed by a gcloud filter expression.",
		Annotations: &mcp.ToolAnnotations{
			Title:          "List enabled API services",
			ReadOnlyHint:   true,
			IdempotentHint: true,
		},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input ServicesInput) (*mcp.CallToolResult, any, error) {
		result, err := ops.ServicesList(ctx, deps.Runner, deps.Resolver, input.ProjectID, input.Filter)
		if err != nil {
			return convertError(err), nil, nil
		}
		return formatResult(input.Format, result), nil, nil
	})
}
