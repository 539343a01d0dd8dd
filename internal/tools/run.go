package tools

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/su-record/hi-gcloud/internal/ops"
)

// RunStatusInput is the input type for run_status.
type RunStatusInput struct {
	Service   string `json:"service"`
	Region    string `json:"region,omitempty"`
	ProjectID string `json:"project_id,omitempty"`
	Format    string `json:"format,omitempty"`
}

// RunLogsInput is the input type for run_logs.
type RunLogsInput struct {
	Service   string `json:"service"`
	Region    string `json:"region,omitempty"`
	ProjectID string `json:"project_id,omitempty"`
	Severity  string `json:"severity,omitempty"`
	TimeRange string `json:"time_range,omitempty"`
	Limit     int    `json:"limit,omitempty"`
	Format    string `json:"format,omitempty"`
}

// RegisterRunStatus registers the run_status tool.
func RegisterRunStatus(srv *mcp.Server, deps Deps) {
	mcp.AddTool(srv, &mcp.Tool{
		Name:        "run_status",
		Description: "Describe a Cloud Run service: URL, latest revision, readiness conditions.",
		Annotations: &mcp.ToolAnnotations{
			Title:          "Check Cloud Run service status",
			ReadOnlyHint:   true,
			IdempotentHint: true,
		},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input RunStatusInput) (*mcp.CallToolResult, any, error) {
		result, err := ops.RunStatus(ctx, deps.Runner, deps.Resolver,
			input.Service, input.Region, input.ProjectID)
		if err != nil {
			return convertError(err), nil, nil
		}
		return formatResult(input.Format, result), nil, nil
	})
}

// RegisterRunLogs registers the run_logs tool.
func RegisterRunLogs(srv *mcp.Server, deps Deps) {
	mcp.AddTool(srv, &mcp.Tool{
		Name:        "run_logs",
		Description: "Fetch logs for one Cloud Run service. Filter by severity and time range.",
		Annotations: &mcp.ToolAnnotations{
			Title:          "Fetch Cloud Run service logs",
			ReadOnlyHint:   true,
			IdempotentHint: true,
		},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input RunLogsInput) (*mcp.CallToolResult, any, error) {
		result, err := ops.RunLogs(ctx, deps.Runner, deps.Resolver,
			input.Service, input.Region, input.ProjectID, input.Severity, input.TimeRange, input.Limit)
		if err != nil {
			return convertError(err), nil, nil
		}
		return formatResult(input.Format, result), nil, nil
	})
}
