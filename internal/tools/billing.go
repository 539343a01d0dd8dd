package tools

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/su-record/hi-gcloud/internal/ops"
)

// BillingInput is the input type for billing_info.
type BillingInput struct {
	ProjectID string `json:"project_id,omitempty"`
	Format    string `json:"format,omitempty"`
}

// RegisterBilling registers the billing_info tool.
func RegisterBilling(srv *mcp.Server, deps Deps) {
	mcp.AddTool(srv, &mcp.Tool{
		Name:        "billing_info",
		Description: "Show a project's billing linkage and the linked account's display name.",
		Annotations: &mcp.ToolAnnotations{
			Title:          "Check project billing",
			ReadOnlyHint:   true,
			IdempotentHint: true,
		},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input BillingInput) (*mcp.CallToolResult, any, error) {
		result, err := ops.BillingInfo(ctx, deps.Runner, deps.Resolver, input.ProjectID)
		if err != nil {
			return convertError(err), nil, nil
		}
		return formatResult(input.Format, result), nil, nil
	})
}
