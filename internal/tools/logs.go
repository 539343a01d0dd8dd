package tools

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/su-record/hi-gcloud/internal/ops"
)

// LogsInput is the input type for logs_read.
type LogsInput struct {
	Filter    string `json:"filter,omitempty"`
	ProjectID string `json:"project_id,omitempty"`
	TimeRange string `json:"time_range,omitempty"`
	Limit     int    `json:"limit,omitempty"`
	Format    string `json:"format,omitempty"`
}

// RegisterLogs registers the logs_read tool.
func RegisterLogs(srv *mcp.Server, deps Deps) {
	mcp.AddTool(srv, &mcp.Tool{
		Name:        "logs_read",
		Description: "Query Cloud Logging. Combine a filter expression with a time range like 30m, 6h, or 7d.",
		Annotations: &mcp.ToolAnnotations{
			Title:          "Read Cloud Logging entries",
			ReadOnlyHint:   true,
			IdempotentHint: true,
		},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input LogsInput) (*mcp.CallToolResult, any, error) {
		result, err := ops.LogsRead(ctx, deps.Runner, deps.Resolver,
			input.Filter, input.ProjectID, input.TimeRange, input.Limit)
		if err != nil {
			return convertError(err), nil, nil
		}
		return formatResult(input.Format, result), nil, nil
	})
}
