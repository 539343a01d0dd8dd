package server

import (
	"context"
	"encoding/json"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const configResourceURI = "gcloud://config"

func (s *Server) registerResources() {
	s.server.AddResource(
		&mcp.Resource{
			URI:         configResourceURI,
			Name:        "gcloud-config",
			Description: "The per-directory hi-gcloud configuration, read live from disk.",
			MIMEType:    "application/json",
		},
		func(_ context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
			if req.Params.URI != configResourceURI {
				return nil, mcp.ResourceNotFoundError(req.Params.URI)
			}

			r := s.store.Read()
			state := map[string]any{
				"path":   s.store.Path(),
				"exists": r.Exists,
			}
			if r.Exists {
				state["disabled"] = r.Disabled
			}
			if r.Err != "" {
				state["error"] = r.Err
			}
			if r.Config != nil {
				state["config"] = r.Config
			}

			b, err := json.MarshalIndent(state, "", "  ")
			if err != nil {
				return nil, err
			}

			return &mcp.ReadResourceResult{
				Contents: []*mcp.ResourceContents{{
					URI:      configResourceURI,
					MIMEType: "application/json",
					Text:     string(b),
				}},
			}, nil
		},
	)
}
