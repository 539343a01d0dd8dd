// Package server assembles the MCP server: tool registration, the
// visibility gate middleware, instructions, and resources.
package server

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/su-record/hi-gcloud/internal/config"
	"github.com/su-record/hi-gcloud/internal/gcloud"
	"github.com/su-record/hi-gcloud/internal/resolve"
	"github.com/su-record/hi-gcloud/internal/runtime"
	"github.com/su-record/hi-gcloud/internal/tools"
)

// Version, Commit, Built are set by ldflags at build time.
var (
	Version = "dev"
	Commit  = "unknown"
	Built   = "unknown"
)

// Server wraps the MCP server with hi-gcloud configuration.
type Server struct {
	server *mcp.Server
	store  *config.Store
	runner gcloud.Runner
	rtInfo runtime.Info
}

// New creates the MCP server with all tools registered and the visibility
// gate installed.
func New(store *config.Store, runner gcloud.Runner, resolver *resolve.Resolver, rtInfo runtime.Info) *Server {
	srv := mcp.NewServer(
		&mcp.Implementation{Name: "hi-gcloud", Version: Version},
		&mcp.ServerOptions{Instructions: BuildInstructions(store)},
	)

	// Hide the tool surface while the directory's config disables it.
	srv.AddReceivingMiddleware(VisibilityGate(store))

	s := &Server{
		server: srv,
		store:  store,
		runner: runner,
		rtInfo: rtInfo,
	}

	deps := tools.Deps{
		Store:    store,
		Runner:   runner,
		Resolver: resolver,
		Runtime:  rtInfo,
	}

	// State-mutating tool
	tools.RegisterSetup(srv, deps)

	// Read-only tools
	tools.RegisterLogs(srv, deps)
	tools.RegisterRunStatus(srv, deps)
	tools.RegisterRunLogs(srv, deps)
	tools.RegisterSQL(srv, deps)
	tools.RegisterStorage(srv, deps)
	tools.RegisterSecrets(srv, deps)
	tools.RegisterAuth(srv, deps)
	tools.RegisterServices(srv, deps)
	tools.RegisterBilling(srv, deps)

	s.registerResources()
	return s
}

// Run starts the MCP server on stdio transport.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// MCPServer returns the underlying MCP server (for testing).
func (s *Server) MCPServer() *mcp.Server {
	return s.server
}
