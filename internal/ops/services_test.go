// Tests for: services.go — enabled API listing.

package ops

import (
	"context"
	"strings"
	"testing"

	"github.com/su-record/hi-gcloud/internal/gcloud"
)

func TestServicesList(t *testing.T) {
	t.Parallel()
	m := gcloud.NewMock().WithOutput("services list", `[
		{"config": {"name": "run.googleapis.com", "title": "Cloud Run Admin API"}},
		{"config": {"name": "logging.googleapis.com", "title": "Cloud Logging API"}}
	]`)
	res := testResolver(t, `{"enabled": true, "project_id": "proj-1"}`, m)

	got, err := ServicesList(context.Background(), m, res, "", "")
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Services) != 2 {
		t.Fatalf("services = %d", len(got.Services))
	}
	if got.Services[0].Name != "run.googleapis.com" {
		t.Errorf("Name = %q", got.Services[0].Name)
	}

	joined := strings.Join(m.Calls()[0], " ")
	if !strings.Contains(joined, "--enabled") {
		t.Errorf("--enabled missing: %q", joined)
	}
}

func TestServicesList_FilterPassedThrough(t *testing.T) {
	t.Parallel()
	m := gcloud.NewMock().WithOutput("services list", "[]")
	res := testResolver(t, `{"enabled": true, "project_id": "p"}`, m)

	got, err := ServicesList(context.Background(), m, res, "", "name:run")
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Services) != 0 {
		t.Errorf("services = %d", len(got.Services))
	}
	if !strings.Contains(strings.Join(m.Calls()[0], " "), "--filter name:run") {
		t.Errorf("filter missing: %v", m.Calls()[0])
	}
}
