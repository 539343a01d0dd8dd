package ops

import (
	"context"
	"fmt"
	"strings"

	"github.com/su-record/hi-gcloud/internal/gcloud"
	"github.com/su-record/hi-gcloud/internal/resolve"
)

// Condition is one status condition of a Cloud Run service.
type Condition struct {
	Type    string `json:"type"`
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// RunStatusResult describes a single Cloud Run service's state.
type RunStatusResult struct {
	Service        string      `json:"service"`
	Project        string      `json:"project"`
	Region         string      `json:"region,omitempty"`
	URL            string      `json:"url,omitempty"`
	LatestRevision string      `json:"latest_revision,omitempty"`
	Ready          bool        `json:"ready"`
	Conditions     []Condition `json:"conditions,omitempty"`
}

// Text renders the service state report.
func (r *RunStatusResult) Text() string {
	var b strings.Builder
	state := "NOT READY"
	if r.Ready {
		state = "READY"
	}
	fmt.Fprintf(&b, "Cloud Run service %s (%s): %s\n", r.Service, r.Project, state)
	if r.URL != "" {
		fmt.Fprintf(&b, "URL: %s\n", r.URL)
	}
	if r.LatestRevision != "" {
		fmt.Fprintf(&b, "Latest revision: %s\n", r.LatestRevision)
	}
	for _, c := range r.Conditions {
		if c.Status != "True" {
			fmt.Fprintf(&b, "Condition %s=%s: %s\n", c.Type, c.Status, c.Message)
		}
	}
	b.WriteString(nextAfterRunStatus)
	return b.String()
}

// runServiceDescribe mirrors the knative-shaped JSON of
// gcloud run services describe --format=json.
type runServiceDescribe struct {
	Metadata struct {
		Name string `json:"name"`
	} `json:"metadata"`
	Status struct {
		URL                       string      `json:"url"`
		LatestReadyRevisionName   string      `json:"latestReadyRevisionName"`
		LatestCreatedRevisionName string      `json:"latestCreatedRevisionName"`
		Conditions                []Condition `json:"conditions"`
	} `json:"status"`
}

// RunStatus describes one Cloud Run service.
func RunStatus(ctx context.Context, runner gcloud.Runner, res *resolve.Resolver, service, region, projectID string) (*RunStatusResult, error) {
	if strings.TrimSpace(service) == "" {
		return nil, gcloud.NewError(gcloud.ErrMissingArgument,
			"run_status requires a service name",
			"Pass service=<cloud-run-service-name>")
	}

	project, err := res.Project(ctx, projectID)
	if err != nil {
		return nil, err
	}
	resolvedRegion := res.Region(ctx, region)

	args := []string{"run", "services", "describe", service, "--project", project, "--format", "json"}
	if resolvedRegion != "" {
		args = append(args, "--region", resolvedRegion)
	}

	out, err := runner.Run(ctx, gcloud.TimeoutDescribe, args...)
	if err != nil {
		return nil, err
	}

	var desc runServiceDescribe
	if err := decodeJSON(out.Stdout, &desc); err != nil {
		return nil, err
	}

	result := &RunStatusResult{
		Service:        service,
		Project:        project,
		Region:         resolvedRegion,
		URL:            desc.Status.URL,
		LatestRevision: desc.Status.LatestReadyRevisionName,
		Conditions:     desc.Status.Conditions,
	}
	if result.LatestRevision == "" {
		result.LatestRevision = desc.Status.LatestCreatedRevisionName
	}
	for _, c := range desc.Status.Conditions {
		if c.Type == "Ready" && c.Status == "True" {
			result.Ready = true
		}
	}
	return result, nil
}

// RunLogs queries Cloud Logging scoped to one Cloud Run service's revisions.
func RunLogs(ctx context.Context, runner gcloud.Runner, res *resolve.Resolver, service, region, projectID, severity, timeRange string, limit int) (*LogsResult, error) {
	if strings.TrimSpace(service) == "" {
		return nil, gcloud.NewError(gcloud.ErrMissingArgument,
			"run_logs requires a service name",
			"Pass service=<cloud-run-service-name>")
	}

	project, err := res.Project(ctx, projectID)
	if err != nil {
		return nil, err
	}
	resolvedRegion := res.Region(ctx, region)

	filter := runLogFilter(service, resolvedRegion, severity)
	fullFilter := composeLogFilter(filter, timeRange)

	entries, err := readLogEntries(ctx, runner, project, fullFilter, limit)
	if err != nil {
		return nil, err
	}
	return &LogsResult{Project: project, Filter: fullFilter, Entries: entries}, nil
}

// runLogFilter builds the Cloud Run revision resource filter.
func runLogFilter(service, region, severity string) string {
	parts := []string{
		`resource.type="cloud_run_revision"`,
		fmt.Sprintf("resource.labels.service_name=%q", service),
	}
	if region != "" {
		parts = append(parts, fmt.Sprintf("resource.labels.location=%q", region))
	}
	if sev := normalizeSeverity(severity); sev != "" {
		parts = append(parts, "severity>="+sev)
	}
	return strings.Join(parts, " AND ")
}
