package tools

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/su-record/hi-gcloud/internal/ops"
)

// StorageInput is the input type for storage_list.
type StorageInput struct {
	Bucket    string `json:"bucket,omitempty"`
	Prefix    string `json:"prefix,omitempty"`
	ProjectID string `json:"project_id,omitempty"`
	Limit     int    `json:"limit,omitempty"`
	Format    string `json:"format,omitempty"`
}

// RegisterStorage registers the storage_list tool.
func RegisterStorage(srv *mcp.Server, deps Deps) {
	mcp.AddTool(srv, &mcp.Tool{
		Name:        "storage_list",
		Description: "List Cloud Storage buckets, or objects under a bucket/prefix.",
		Annotations: &mcp.ToolAnnotations{
			Title:          "List Cloud Storage contents",
			ReadOnlyHint:   true,
			IdempotentHint: true,
		},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input StorageInput) (*mcp.CallToolResult, any, error) {
		result, err := ops.StorageList(ctx, deps.Runner, deps.Resolver,
			input.Bucket, input.Prefix, input.ProjectID, input.Limit)
		if err != nil {
			return convertError(err), nil, nil
		}
		return formatResult(input.Format, result), nil, nil
	})
}
