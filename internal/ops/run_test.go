// Tests for: run.go — Cloud Run status and scoped log queries.

package ops

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/su-record/hi-gcloud/internal/gcloud"
)

const readyServiceJSON = `{
	"metadata": {"name": "api"},
	"status": {
		"url": "https://api-abc-an3.a.run.app",
		"latestReadyRevisionName": "api-00042-xyz",
		"conditions": [
			{"type": "Ready", "status": "True"},
			{"type": "RoutesReady", "status": "True"}
		]
	}
}`

func TestRunStatus_Ready(t *testing.T) {
	t.Parallel()
	m := gcloud.NewMock().WithOutput("run services describe", readyServiceJSON)
	res := testResolver(t, `{"enabled": true, "project_id": "proj-1", "region": "asia-northeast3"}`, m)

	got, err := RunStatus(context.Background(), m, res, "api", "", "")
	if err != nil {
		t.Fatal(err)
	}
	if !got.Ready {
		t.Error("Ready = false")
	}
	if got.URL != "https://api-abc-an3.a.run.app" {
		t.Errorf("URL = %q", got.URL)
	}
	if got.Region != "asia-northeast3" {
		t.Errorf("Region = %q, want config region", got.Region)
	}

	joined := strings.Join(m.Calls()[0], " ")
	if !strings.Contains(joined, "--region asia-northeast3") {
		t.Errorf("region flag missing: %q", joined)
	}
}

func TestRunStatus_NotReadySurfacesCondition(t *testing.T) {
	t.Parallel()
	m := gcloud.NewMock().WithOutput("run services describe", `{
		"metadata": {"name": "api"},
		"status": {
			"latestCreatedRevisionName": "api-00043-bad",
			"conditions": [{"type": "Ready", "status": "False", "message": "image pull failed"}]
		}
	}`)
	res := testResolver(t, `{"enabled": true, "project_id": "p"}`, m)

	got, err := RunStatus(context.Background(), m, res, "api", "us-central1", "")
	if err != nil {
		t.Fatal(err)
	}
	if got.Ready {
		t.Error("Ready = true for failing service")
	}
	if got.LatestRevision != "api-00043-bad" {
		t.Errorf("LatestRevision = %q", got.LatestRevision)
	}
	if !strings.Contains(got.Text(), "image pull failed") {
		t.Errorf("Text lost condition message:\n%s", got.Text())
	}
}

func TestRunStatus_MissingService(t *testing.T) {
	t.Parallel()
	m := gcloud.NewMock()
	res := testResolver(t, `{"enabled": true, "project_id": "p"}`, m)

	_, err := RunStatus(context.Background(), m, res, " ", "", "")
	var ge *gcloud.Error
	if !errors.As(err, &ge) || ge.Code != gcloud.ErrMissingArgument {
		t.Errorf("err = %v, want MISSING_ARGUMENT", err)
	}
	if len(m.Calls()) != 0 {
		t.Error("subprocess invoked for missing argument")
	}
}

func TestRunStatus_UnsetRegionOmitsFlag(t *testing.T) {
	t.Parallel()
	m := gcloud.NewMock().WithOutput("run services describe", readyServiceJSON)
	res := testResolver(t, `{"enabled": true, "project_id": "p"}`, m)

	if _, err := RunStatus(context.Background(), m, res, "api", "", ""); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(strings.Join(m.Calls()[0], " "), "--region") {
		t.Errorf("region flag present without a resolved region: %v", m.Calls()[0])
	}
}

func TestRunLogs_FilterShape(t *testing.T) {
	t.Parallel()
	m := gcloud.NewMock().WithOutput("logging read", "[]")
	res := testResolver(t, `{"enabled": true, "project_id": "p", "region": "asia-northeast3"}`, m)

	got, err := RunLogs(context.Background(), m, res, "api", "", "", "error", "6h", 0)
	if err != nil {
		t.Fatal(err)
	}

	for _, want := range []string{
		`resource.type="cloud_run_revision"`,
		`resource.labels.service_name="api"`,
		`resource.labels.location="asia-northeast3"`,
		"severity>=ERROR",
		`timestamp>="`,
	} {
		if !strings.Contains(got.Filter, want) {
			t.Errorf("filter %q missing %q", got.Filter, want)
		}
	}
}

func TestRunLogs_InvalidSeverityIgnored(t *testing.T) {
	t.Parallel()
	m := gcloud.NewMock().WithOutput("logging read", "[]")
	res := testResolver(t, `{"enabled": true, "project_id": "p"}`, m)

	got, err := RunLogs(context.Background(), m, res, "api", "", "", "loud", "", 0)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(got.Filter, "severity") {
		t.Errorf("invalid severity leaked into filter: %q", got.Filter)
	}
}
