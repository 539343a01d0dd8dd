package tools

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/su-record/hi-gcloud/internal/ops"
)

// SecretsInput is the input type for secret_list.
type SecretsInput struct {
	SecretName string `json:"secret_name,omitempty"`
	ProjectID  string `json:"project_id,omitempty"`
	ShowValue  bool   `json:"show_value,omitempty"`
	Version    string `json:"version,omitempty"`
	Format     string `json:"format,omitempty"`
}

// RegisterSecrets registers the secret_list tool.
func RegisterSecrets(srv *mcp.Server, deps Deps) {
	mcp.AddTool(srv, &mcp.Tool{
		Name:        "secret_list",
		Description: "List Secret Manager secrets, a secret's versions, or (with show_value) access one version's payload.",
		Annotations: &mcp.ToolAnnotations{
			Title:          "Inspect Secret Manager",
			ReadOnlyHint:   true,
			IdempotentHint: true,
		},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input SecretsInput) (*mcp.CallToolResult, any, error) {
		result, err := ops.SecretList(ctx, deps.Runner, deps.Resolver,
			input.SecretName, input.ProjectID, input.ShowValue, input.Version)
		if err != nil {
			return convertError(err), nil, nil
		}
		return formatResult(input.Format, result), nil, nil
	})
}
