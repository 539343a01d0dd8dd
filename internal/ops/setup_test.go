// Tests for: setup.go — the one state-mutating operation.

package ops

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/spf13/afero"

	"github.com/su-record/hi-gcloud/internal/config"
	"github.com/su-record/hi-gcloud/internal/gcloud"
	"github.com/su-record/hi-gcloud/internal/runtime"
)

func setupStore(t *testing.T, content string) *config.Store {
	t.Helper()
	fs := afero.NewMemMapFs()
	store := config.NewStore(fs, "/work")
	if content != "" {
		if err := afero.WriteFile(fs, store.Path(), []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return store
}

func TestSetup_Create(t *testing.T) {
	t.Parallel()
	store := setupStore(t, "")
	m := gcloud.NewMock()

	got, err := Setup(context.Background(), store, m, runtime.Info{}, SetupCreate, "proj-1", "asia-northeast3", "dev@example.com")
	if err != nil {
		t.Fatal(err)
	}
	if !got.Enabled || got.ProjectID != "proj-1" {
		t.Errorf("result = %+v", got)
	}

	r := store.Read()
	if r.Config == nil || r.Config.ProjectID != "proj-1" || r.Config.Region != "asia-northeast3" {
		t.Errorf("persisted config = %+v", r)
	}
}

func TestSetup_CreateUsesAmbientProject(t *testing.T) {
	t.Parallel()
	store := setupStore(t, "")
	m := gcloud.NewMock().WithDefaultProject("ambient-proj")

	got, err := Setup(context.Background(), store, m, runtime.Info{}, SetupCreate, "", "", "")
	if err != nil {
		t.Fatal(err)
	}
	if got.ProjectID != "ambient-proj" {
		t.Errorf("ProjectID = %q", got.ProjectID)
	}
}

func TestSetup_CreateFailsWithoutAnyProject(t *testing.T) {
	t.Parallel()
	store := setupStore(t, "")
	m := gcloud.NewMock()

	_, err := Setup(context.Background(), store, m, runtime.Info{}, SetupCreate, "", "", "")
	var ge *gcloud.Error
	if !errors.As(err, &ge) || ge.Code != gcloud.ErrNoProject {
		t.Errorf("err = %v, want NO_PROJECT", err)
	}
}

func TestSetup_CreateFailsOnExistingConfig(t *testing.T) {
	t.Parallel()
	store := setupStore(t, `{"enabled": true, "project_id": "old"}`)
	m := gcloud.NewMock()

	_, err := Setup(context.Background(), store, m, runtime.Info{}, SetupCreate, "new", "", "")
	if err == nil || !strings.Contains(err.Error(), "update") {
		t.Errorf("err = %v, want existing-config failure pointing at update", err)
	}
}

func TestSetup_CreateSucceedsOverDisabledConfig(t *testing.T) {
	t.Parallel()
	store := setupStore(t, `{"enabled": false}`)
	m := gcloud.NewMock()

	if _, err := Setup(context.Background(), store, m, runtime.Info{}, SetupCreate, "proj", "", ""); err != nil {
		t.Fatalf("create over disabled marker: %v", err)
	}
}

func TestSetup_Update(t *testing.T) {
	t.Parallel()
	store := setupStore(t, `{"enabled": true, "project_id": "old", "region": "us-central1"}`)
	m := gcloud.NewMock()

	got, err := Setup(context.Background(), store, m, runtime.Info{}, SetupUpdate, "", "europe-west1", "")
	if err != nil {
		t.Fatal(err)
	}
	// Unspecified fields survive the update.
	if got.ProjectID != "old" || got.Region != "europe-west1" {
		t.Errorf("result = %+v", got)
	}
}

func TestSetup_UpdateFailures(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		content string
	}{
		{"no config", ""},
		{"disabled", `{"enabled": false}`},
		{"unparseable", "{broken"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			store := setupStore(t, tt.content)
			_, err := Setup(context.Background(), store, gcloud.NewMock(), runtime.Info{}, SetupUpdate, "p", "", "")
			if err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestSetup_EnableFailsWhenAlreadyEnabled(t *testing.T) {
	t.Parallel()
	store := setupStore(t, `{"enabled": true, "project_id": "p"}`)
	_, err := Setup(context.Background(), store, gcloud.NewMock(), runtime.Info{}, SetupEnable, "", "", "")
	if err == nil {
		t.Error("expected already-enabled error")
	}
}

func TestSetup_EnableActsAsCreateWhenDisabled(t *testing.T) {
	t.Parallel()
	store := setupStore(t, `{"enabled": false}`)
	got, err := Setup(context.Background(), store, gcloud.NewMock(), runtime.Info{}, SetupEnable, "proj-2", "", "")
	if err != nil {
		t.Fatal(err)
	}
	if !got.Enabled || got.ProjectID != "proj-2" {
		t.Errorf("result = %+v", got)
	}
}

func TestSetup_DisableIdempotent(t *testing.T) {
	t.Parallel()
	store := setupStore(t, `{"enabled": true, "project_id": "p"}`)
	m := gcloud.NewMock()

	for i := 0; i < 2; i++ {
		got, err := Setup(context.Background(), store, m, runtime.Info{}, SetupDisable, "", "", "")
		if err != nil {
			t.Fatalf("disable #%d: %v", i+1, err)
		}
		if got.Enabled {
			t.Error("Enabled = true after disable")
		}
	}

	r := store.Read()
	if !r.Disabled {
		t.Errorf("store state = %+v, want disabled", r)
	}
}

func TestSetup_StatusIsPureRead(t *testing.T) {
	t.Parallel()
	store := setupStore(t, "")
	m := gcloud.NewMock().
		WithDefaultProject("ambient-proj").
		WithDefaultRegion("us-west1").
		WithAuthStatus(&gcloud.AuthStatus{Authenticated: true, Account: "dev@example.com"})

	got, err := Setup(context.Background(), store, m, runtime.Info{CloudShell: true}, SetupStatus, "", "", "")
	if err != nil {
		t.Fatal(err)
	}
	if got.Exists {
		t.Error("Exists = true for missing file")
	}
	if got.AmbientProject != "ambient-proj" || got.AmbientRegion != "us-west1" {
		t.Errorf("ambient = %q/%q", got.AmbientProject, got.AmbientRegion)
	}
	if got.Auth == nil || !got.Auth.Authenticated {
		t.Errorf("Auth = %+v", got.Auth)
	}
	if !got.CloudShell {
		t.Error("CloudShell not surfaced")
	}
	// No write happened.
	if r := store.Read(); r.Exists {
		t.Error("status action wrote a config file")
	}
}

func TestSetup_UnknownAction(t *testing.T) {
	t.Parallel()
	_, err := Setup(context.Background(), setupStore(t, ""), gcloud.NewMock(), runtime.Info{}, "destroy", "", "", "")
	var ge *gcloud.Error
	if !errors.As(err, &ge) || ge.Code != gcloud.ErrMissingArgument {
		t.Errorf("err = %v, want MISSING_ARGUMENT", err)
	}
}
