package server

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/su-record/hi-gcloud/internal/config"
)

// VisibilityGate returns MCP middleware that answers tools/list with an
// empty set while the directory's config explicitly disables operations.
//
// The config file is read fresh on every list request — an edit takes
// effect on the very next call, with no caching across requests. Only
// advertisement is gated; tool calls pass through untouched.
func VisibilityGate(store *config.Store) mcp.Middleware {
	return func(next mcp.MethodHandler) mcp.MethodHandler {
		return func(ctx context.Context, method string, req mcp.Request) (mcp.Result, error) {
			if method == "tools/list" {
				if r := store.Read(); r.Exists && r.Disabled {
					return &mcp.ListToolsResult{Tools: []*mcp.Tool{}}, nil
				}
			}
			return next(ctx, method, req)
		}
	}
}
