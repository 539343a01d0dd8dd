package tools

import (
	"context"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/afero"

	"github.com/su-record/hi-gcloud/internal/config"
	"github.com/su-record/hi-gcloud/internal/gcloud"
	"github.com/su-record/hi-gcloud/internal/resolve"
	"github.com/su-record/hi-gcloud/internal/runtime"
)

// newTestDeps builds the tool dependencies over an in-memory config file
// and the given mock runner.
func newTestDeps(t *testing.T, cfgContent string, mock *gcloud.Mock) Deps {
	t.Helper()
	fs := afero.NewMemMapFs()
	store := config.NewStore(fs, "/work")
	if cfgContent != "" {
		if err := afero.WriteFile(fs, store.Path(), []byte(cfgContent), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return Deps{
		Store:    store,
		Runner:   mock,
		Resolver: resolve.New(store, mock),
		Runtime:  runtime.Info{},
	}
}

// newTestServer builds an MCP server with all tools registered.
func newTestServer(deps Deps) *mcp.Server {
	srv := mcp.NewServer(&mcp.Implementation{Name: "hi-gcloud-test", Version: "0.0.0"}, nil)
	RegisterSetup(srv, deps)
	RegisterLogs(srv, deps)
	RegisterRunStatus(srv, deps)
	RegisterRunLogs(srv, deps)
	RegisterSQL(srv, deps)
	RegisterStorage(srv, deps)
	RegisterSecrets(srv, deps)
	RegisterAuth(srv, deps)
	RegisterServices(srv, deps)
	RegisterBilling(srv, deps)
	return srv
}

// callTool connects to a test server and calls a named tool with the given arguments.
func callTool(t *testing.T, srv *mcp.Server, name string, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	ctx := context.Background()
	st, ct := mcp.NewInMemoryTransports()

	ss, err := srv.Connect(ctx, st, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer ss.Close()

	client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "0.1"}, nil)
	session, err := client.Connect(ctx, ct, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer session.Close()

	result, err := session.CallTool(ctx, &mcp.CallToolParams{Name: name, Arguments: args})
	if err != nil {
		t.Fatal(err)
	}
	return result
}

// getTextContent extracts the text string from the first content item of a CallToolResult.
func getTextContent(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if len(result.Content) == 0 {
		t.Fatal("no content in result")
	}
	tc, ok := result.Content[0].(*mcp.TextContent)
	if !ok {
		t.Fatalf("expected *mcp.TextContent, got %T", result.Content[0])
	}
	return tc.Text
}
