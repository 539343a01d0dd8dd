package ops

import (
	"context"
	"fmt"
	"strings"

	"github.com/su-record/hi-gcloud/internal/gcloud"
	"github.com/su-record/hi-gcloud/internal/resolve"
)

// ServiceInfo is one enabled API service.
type ServiceInfo struct {
	Name  string `json:"name"`
	Title string `json:"title,omitempty"`
}

// ServicesListResult lists a project's enabled API services.
type ServicesListResult struct {
	Project  string        `json:"project"`
	Filter   string        `json:"filter,omitempty"`
	Services []ServiceInfo `json:"services"`
}

// Text renders the service listing.
func (r *ServicesListResult) Text() string {
	if len(r.Services) == 0 {
		return fmt.Sprintf("No enabled services in project %s.", r.Project)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%d enabled services in project %s\n", len(r.Services), r.Project)
	for _, s := range r.Services {
		fmt.Fprintf(&b, "%s  %s\n", s.Name, s.Title)
	}
	return strings.TrimRight(b.String(), "\n")
}

type rawService struct {
	Config struct {
		Name  string `json:"name"`
		Title string `json:"title"`
	} `json:"config"`
}

// ServicesList lists enabled API services, optionally narrowed by a
// gcloud filter expression.
func ServicesList(ctx context.Context, runner gcloud.Runner, res *resolve.Resolver, projectID, filter string) (*ServicesListResult, error) {
	project, err := res.Project(ctx, projectID)
	if err != nil {
		return nil, err
	}

	args := []string{"services", "list", "--enabled", "--project", project, "--format", "json"}
	if filter != "" {
		args = append(args, "--filter", filter)
	}

	out, err := runner.Run(ctx, gcloud.TimeoutDescribe, args...)
	if err != nil {
		return nil, err
	}

	var raw []rawService
	if err := decodeJSON(out.Stdout, &raw); err != nil {
		return nil, err
	}

	result := &ServicesListResult{Project: project, Filter: filter, Services: []ServiceInfo{}}
	for _, s := range raw {
		result.Services = append(result.Services, ServiceInfo{Name: s.Config.Name, Title: s.Config.Title})
	}
	return result, nil
}
