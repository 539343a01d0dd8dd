// Package tools registers the MCP tool surface and converts operation
// results and errors into CallToolResult payloads.
package tools

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"gopkg.in/yaml.v3"

	"github.com/su-record/hi-gcloud/internal/config"
	"github.com/su-record/hi-gcloud/internal/gcloud"
	"github.com/su-record/hi-gcloud/internal/resolve"
	"github.com/su-record/hi-gcloud/internal/runtime"
)

// Deps bundles what every tool handler needs.
type Deps struct {
	Store    *config.Store
	Runner   gcloud.Runner
	Resolver *resolve.Resolver
	Runtime  runtime.Info
}

// textRenderer is implemented by every ops result struct.
type textRenderer interface {
	Text() string
}

// convertError converts an error to a CallToolResult with IsError=true.
// gcloud errors are serialized as structured JSON with code/error/suggestion.
// Generic errors (config problems, local validation) are plain text.
func convertError(err error) *mcp.CallToolResult {
	var ge *gcloud.Error
	if !errors.As(err, &ge) {
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: err.Error()}},
			IsError: true,
		}
	}
	result := map[string]string{"code": ge.Code, "error": ge.Message}
	if ge.Suggestion != "" {
		result["suggestion"] = ge.Suggestion
	}
	b, err := json.Marshal(result)
	if err != nil {
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: fmt.Sprintf("marshal error: %v", err)}},
			IsError: true,
		}
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(b)}},
		IsError: true,
	}
}

// formatResult renders an ops result in the requested format.
// text is the default; json and yaml serialize the result struct.
func formatResult(format string, v textRenderer) *mcp.CallToolResult {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json":
		return jsonResult(v)
	case "yaml":
		return yamlResult(v)
	default:
		return textResult(v.Text())
	}
}

// jsonResult marshals v to JSON and returns it as a CallToolResult.
func jsonResult(v any) *mcp.CallToolResult {
	b, err := json.Marshal(v)
	if err != nil {
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: fmt.Sprintf("marshal error: %v", err)}},
			IsError: true,
		}
	}
	return &mcp.CallToolResult{Content: []mcp.Content{&mcp.TextContent{Text: string(b)}}}
}

// yamlResult marshals v to YAML and returns it as a CallToolResult.
func yamlResult(v any) *mcp.CallToolResult {
	b, err := yaml.Marshal(v)
	if err != nil {
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: fmt.Sprintf("marshal error: %v", err)}},
			IsError: true,
		}
	}
	return &mcp.CallToolResult{Content: []mcp.Content{&mcp.TextContent{Text: string(b)}}}
}

// textResult returns a plain text CallToolResult.
func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{Content: []mcp.Content{&mcp.TextContent{Text: text}}}
}

// boolPtr returns a pointer to b. Used for optional bool fields in ToolAnnotations.
func boolPtr(b bool) *bool { return &b }
