package ops

import (
	"context"
	"fmt"
	"strings"

	"github.com/su-record/hi-gcloud/internal/config"
	"github.com/su-record/hi-gcloud/internal/gcloud"
	"github.com/su-record/hi-gcloud/internal/runtime"
)

// Setup actions.
const (
	SetupStatus  = "status"
	SetupCreate  = "create"
	SetupUpdate  = "update"
	SetupEnable  = "enable"
	SetupDisable = "disable"
)

// SetupResult describes the outcome of a setup action.
type SetupResult struct {
	Action     string `json:"action"`
	ConfigPath string `json:"config_path"`
	Exists     bool   `json:"exists"`
	Enabled    bool   `json:"enabled"`
	ProjectID  string `json:"project_id,omitempty"`
	Region     string `json:"region,omitempty"`
	Account    string `json:"account,omitempty"`

	// Status-only fields.
	AmbientProject string             `json:"ambient_project,omitempty"`
	AmbientRegion  string             `json:"ambient_region,omitempty"`
	Auth           *gcloud.AuthStatus `json:"auth,omitempty"`
	CloudShell     bool               `json:"cloud_shell,omitempty"`
	Advisory       string             `json:"advisory,omitempty"`

	Message string `json:"message"`
}

// Text renders the result as a compact report.
func (r *SetupResult) Text() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Setup %s: %s\n", r.Action, r.Message)
	fmt.Fprintf(&b, "Config: %s (exists: %v, enabled: %v)\n", r.ConfigPath, r.Exists, r.Enabled)
	if r.ProjectID != "" {
		fmt.Fprintf(&b, "Project: %s\n", r.ProjectID)
	}
	if r.Region != "" {
		fmt.Fprintf(&b, "Region: %s\n", r.Region)
	}
	if r.Account != "" {
		fmt.Fprintf(&b, "Account: %s\n", r.Account)
	}
	if r.Action == SetupStatus {
		fmt.Fprintf(&b, "gcloud default project: %s\n", valueOrUnset(r.AmbientProject))
		fmt.Fprintf(&b, "gcloud default region: %s\n", valueOrUnset(r.AmbientRegion))
		if r.Auth != nil {
			if r.Auth.Authenticated {
				fmt.Fprintf(&b, "Authenticated as: %s\n", r.Auth.Account)
			} else {
				b.WriteString("Not authenticated\n")
			}
		}
		if r.CloudShell {
			b.WriteString("Running in Google Cloud Shell\n")
		}
		if r.Advisory != "" {
			fmt.Fprintf(&b, "Note: %s\n", r.Advisory)
		}
		b.WriteString(nextAfterSetupStatus)
		return b.String()
	}
	b.WriteString(nextAfterSetupCreate)
	return b.String()
}

func valueOrUnset(v string) string {
	if v == "" {
		return "(unset)"
	}
	return v
}

// Setup executes one setup action against the config store. It is the only
// operation that writes configuration.
func Setup(ctx context.Context, store *config.Store, runner gcloud.Runner, rt runtime.Info, action, projectID, region, account string) (*SetupResult, error) {
	switch action {
	case SetupStatus:
		return setupStatus(ctx, store, runner, rt), nil
	case SetupCreate:
		return setupCreate(ctx, store, runner, action, projectID, region, account)
	case SetupEnable:
		return setupEnable(ctx, store, runner, projectID, region, account)
	case SetupUpdate:
		return setupUpdate(store, projectID, region, account)
	case SetupDisable:
		return setupDisable(store)
	case "":
		return nil, gcloud.NewError(gcloud.ErrMissingArgument,
			"setup requires an action",
			"Use action=status|create|update|enable|disable")
	default:
		return nil, gcloud.NewError(gcloud.ErrMissingArgument,
			fmt.Sprintf("Unknown setup action '%s'", action),
			"Use action=status|create|update|enable|disable")
	}
}

// setupStatus is a pure read: config state, ambient defaults, auth, runtime.
func setupStatus(ctx context.Context, store *config.Store, runner gcloud.Runner, rt runtime.Info) *SetupResult {
	r := store.Read()
	res := &SetupResult{
		Action:     SetupStatus,
		ConfigPath: store.Path(),
		Exists:     r.Exists,
		Enabled:    !r.Disabled,
		CloudShell: rt.CloudShell,
		Advisory:   runner.ReleaseAdvisory(),
	}
	if r.Config != nil {
		res.ProjectID = r.Config.ProjectID
		res.Region = r.Config.Region
		res.Account = r.Config.Account
	}

	res.AmbientProject, _ = runner.DefaultProject(ctx)
	res.AmbientRegion, _ = runner.DefaultRegion(ctx)
	res.Auth = runner.CheckAuth(ctx)

	switch {
	case !r.Exists:
		res.Message = "no config file; operations fall back to gcloud defaults"
	case r.Disabled:
		res.Message = "operations are disabled for this directory"
	case r.Err != "":
		res.Message = "config problem: " + r.Err
	default:
		res.Message = "operations enabled"
	}
	return res
}

func setupCreate(ctx context.Context, store *config.Store, runner gcloud.Runner, action, projectID, region, account string) (*SetupResult, error) {
	r := store.Read()
	if r.Exists && !r.Disabled {
		return nil, fmt.Errorf("config already exists at %s; use action=update to change it", store.Path())
	}
	return writeEnabled(ctx, store, runner, action, projectID, region, account)
}

func setupEnable(ctx context.Context, store *config.Store, runner gcloud.Runner, projectID, region, account string) (*SetupResult, error) {
	r := store.Read()
	if r.Exists && !r.Disabled && r.Err == "" {
		return nil, fmt.Errorf("operations are already enabled for %s", store.Path())
	}
	return writeEnabled(ctx, store, runner, SetupEnable, projectID, region, account)
}

// writeEnabled resolves a project id (argument, then ambient default) and
// writes an enabled config.
func writeEnabled(ctx context.Context, store *config.Store, runner gcloud.Runner, action, projectID, region, account string) (*SetupResult, error) {
	if projectID == "" {
		ambient, err := runner.DefaultProject(ctx)
		if err != nil {
			return nil, err
		}
		projectID = ambient
	}
	if projectID == "" {
		return nil, gcloud.NewError(gcloud.ErrNoProject,
			"No project id given and gcloud has no default project",
			"Pass project_id explicitly or run: gcloud config set project <id>")
	}

	enabled := true
	cfg := &config.ProjectConfig{
		Enabled:   &enabled,
		ProjectID: projectID,
		Region:    region,
		Account:   account,
	}
	if err := store.Write(cfg); err != nil {
		return nil, err
	}

	return &SetupResult{
		Action:     action,
		ConfigPath: store.Path(),
		Exists:     true,
		Enabled:    true,
		ProjectID:  projectID,
		Region:     region,
		Account:    account,
		Message:    "config written",
	}, nil
}

func setupUpdate(store *config.Store, projectID, region, account string) (*SetupResult, error) {
	r := store.Read()
	switch {
	case !r.Exists:
		return nil, fmt.Errorf("no config at %s; use action=create first", store.Path())
	case r.Disabled:
		return nil, fmt.Errorf("config is disabled; use action=enable first")
	case r.Err != "":
		return nil, fmt.Errorf("cannot update: %s", r.Err)
	}

	cfg := r.Config
	if projectID != "" {
		cfg.ProjectID = projectID
	}
	if region != "" {
		cfg.Region = region
	}
	if account != "" {
		cfg.Account = account
	}
	if err := store.Write(cfg); err != nil {
		return nil, err
	}

	return &SetupResult{
		Action:     SetupUpdate,
		ConfigPath: store.Path(),
		Exists:     true,
		Enabled:    true,
		ProjectID:  cfg.ProjectID,
		Region:     cfg.Region,
		Account:    cfg.Account,
		Message:    "config updated",
	}, nil
}

// setupDisable writes the pure disabled marker. Idempotent: disabling an
// already-disabled directory succeeds and leaves identical content.
func setupDisable(store *config.Store) (*SetupResult, error) {
	if err := store.WriteDisabled(); err != nil {
		return nil, err
	}
	return &SetupResult{
		Action:     SetupDisable,
		ConfigPath: store.Path(),
		Exists:     true,
		Enabled:    false,
		Message:    "operations disabled; tools are hidden until action=enable",
	}, nil
}
