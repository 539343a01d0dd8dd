package tools

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/su-record/hi-gcloud/internal/ops"
)

// SQLInput is the input type for sql_query.
type SQLInput struct {
	Instance  string `json:"instance"`
	Database  string `json:"database"`
	Query     string `json:"query"`
	ProjectID string `json:"project_id,omitempty"`
	Format    string `json:"format,omitempty"`
}

// RegisterSQL registers the sql_query tool. Only read-only SQL passes
// validation; the query itself is never executed here.
func RegisterSQL(srv *mcp.Server, deps Deps) {
	mcp.AddTool(srv, &mcp.Tool{
		Name:        "sql_query",
		Description: "Validate a read-only SQL query against a Cloud SQL instance and return the exact connect command to run it. Mutating statements are rejected.",
		Annotations: &mcp.ToolAnnotations{
			Title:          "Validate a Cloud SQL query",
			ReadOnlyHint:   true,
			IdempotentHint: true,
		},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input SQLInput) (*mcp.CallToolResult, any, error) {
		result, err := ops.SQLQuery(ctx, deps.Runner, deps.Resolver,
			input.Instance, input.Database, input.Query, input.ProjectID)
		if err != nil {
			return convertError(err), nil, nil
		}
		return formatResult(input.Format, result), nil, nil
	})
}
