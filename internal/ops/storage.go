package ops

import (
	"context"
	"fmt"
	"strings"

	"github.com/su-record/hi-gcloud/internal/gcloud"
	"github.com/su-record/hi-gcloud/internal/resolve"
)

const defaultStorageLimit = 100

// StorageListResult lists buckets (no bucket given) or objects under a
// bucket/prefix.
type StorageListResult struct {
	Project   string   `json:"project"`
	Bucket    string   `json:"bucket,omitempty"`
	Prefix    string   `json:"prefix,omitempty"`
	Items     []string `json:"items"`
	Truncated bool     `json:"truncated,omitempty"`
}

// Text renders the listing.
func (r *StorageListResult) Text() string {
	scope := "buckets in project " + r.Project
	if r.Bucket != "" {
		scope = "objects in gs://" + r.Bucket
		if r.Prefix != "" {
			scope += "/" + r.Prefix
		}
	}
	if len(r.Items) == 0 {
		return fmt.Sprintf("No %s.", scope)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%d %s\n", len(r.Items), scope)
	for _, item := range r.Items {
		b.WriteString(item + "\n")
	}
	if r.Truncated {
		fmt.Fprintf(&b, "(truncated; pass limit= for more)\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// StorageList lists buckets or objects via gcloud storage ls. The CLI's
// ls output is line-oriented gs:// URLs; the limit is applied client-side.
func StorageList(ctx context.Context, runner gcloud.Runner, res *resolve.Resolver, bucket, prefix, projectID string, limit int) (*StorageListResult, error) {
	project, err := res.Project(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = defaultStorageLimit
	}

	args := []string{"storage", "ls", "--project", project}
	if bucket != "" {
		target := "gs://" + strings.TrimPrefix(bucket, "gs://")
		if prefix != "" {
			target += "/" + strings.Trim(prefix, "/")
		}
		args = append(args, target)
	}

	out, err := runner.Run(ctx, gcloud.TimeoutStorage, args...)
	if err != nil {
		return nil, err
	}

	items := nonEmptyLines(out.Stdout)
	result := &StorageListResult{
		Project: project,
		Bucket:  strings.TrimPrefix(bucket, "gs://"),
		Prefix:  strings.Trim(prefix, "/"),
	}
	if len(items) > limit {
		items = items[:limit]
		result.Truncated = true
	}
	result.Items = items
	return result, nil
}
