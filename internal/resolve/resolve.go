// Package resolve implements the layered project/region parameter resolution:
// explicit argument, then config file, then gcloud's own ambient default.
package resolve

import (
	"context"

	"github.com/su-record/hi-gcloud/internal/config"
	"github.com/su-record/hi-gcloud/internal/gcloud"
)

// AmbientSource supplies gcloud's own persisted defaults.
// Satisfied by gcloud.Runner.
type AmbientSource interface {
	DefaultProject(ctx context.Context) (string, error)
	DefaultRegion(ctx context.Context) (string, error)
}

// Resolver resolves operational parameters with first-match-wins precedence.
// There is exactly one chain: explicit → config file → ambient default.
type Resolver struct {
	store   *config.Store
	ambient AmbientSource
}

// New creates a Resolver over the given store and ambient source.
func New(store *config.Store, ambient AmbientSource) *Resolver {
	return &Resolver{store: store, ambient: ambient}
}

// Project resolves the project id. Exhausting all three sources is a
// failure: every operation needs a project.
func (r *Resolver) Project(ctx context.Context, explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}

	if cfg := r.store.Read(); cfg.Exists && !cfg.Disabled && cfg.Config != nil && cfg.Config.ProjectID != "" {
		return cfg.Config.ProjectID, nil
	}

	project, err := r.ambient.DefaultProject(ctx)
	if err != nil {
		return "", err
	}
	if project != "" {
		return project, nil
	}

	return "", gcloud.NewError(gcloud.ErrNoProject,
		"No project id found in arguments, config file, or gcloud defaults",
		"Pass project_id explicitly, run setup action=create project_id=<id>, or: gcloud config set project <id>")
}

// Region resolves the region through the same chain, but exhaustion is not
// an error: callers must tolerate an unset region. Ambient lookup failures
// are likewise treated as "no region" — the operation's own command will
// surface any real gcloud problem.
func (r *Resolver) Region(ctx context.Context, explicit string) string {
	if explicit != "" {
		return explicit
	}

	if cfg := r.store.Read(); cfg.Exists && !cfg.Disabled && cfg.Config != nil && cfg.Config.Region != "" {
		return cfg.Config.Region
	}

	region, err := r.ambient.DefaultRegion(ctx)
	if err != nil {
		return ""
	}
	return region
}
