package ops

import (
	"context"
	"fmt"
	"strings"

	"github.com/su-record/hi-gcloud/internal/gcloud"
	"github.com/su-record/hi-gcloud/internal/resolve"
)

// SecretInfo is one secret in a project listing.
type SecretInfo struct {
	Name    string `json:"name"`
	Created string `json:"created,omitempty"`
}

// SecretVersion is one version of a named secret.
type SecretVersion struct {
	Name    string `json:"name"`
	State   string `json:"state"`
	Created string `json:"created,omitempty"`
}

// SecretListResult is a project listing, a version listing, or an accessed
// payload, depending on the arguments.
type SecretListResult struct {
	Project  string          `json:"project"`
	Secret   string          `json:"secret,omitempty"`
	Version  string          `json:"version,omitempty"`
	Value    string          `json:"value,omitempty"`
	Secrets  []SecretInfo    `json:"secrets,omitempty"`
	Versions []SecretVersion `json:"versions,omitempty"`
}

// Text renders whichever shape was produced.
func (r *SecretListResult) Text() string {
	if r.Value != "" {
		return fmt.Sprintf("Secret %s version %s (%s):\n%s", r.Secret, r.Version, r.Project, r.Value)
	}
	if r.Secret != "" {
		if len(r.Versions) == 0 {
			return fmt.Sprintf("Secret %s has no versions.", r.Secret)
		}
		var b strings.Builder
		fmt.Fprintf(&b, "%d versions of secret %s\n", len(r.Versions), r.Secret)
		for _, v := range r.Versions {
			fmt.Fprintf(&b, "%s  %s  %s\n", v.Name, v.State, v.Created)
		}
		return strings.TrimRight(b.String(), "\n")
	}
	if len(r.Secrets) == 0 {
		return fmt.Sprintf("No secrets in project %s.", r.Project)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%d secrets in project %s\n", len(r.Secrets), r.Project)
	for _, s := range r.Secrets {
		fmt.Fprintf(&b, "%s  %s\n", s.Name, s.Created)
	}
	return strings.TrimRight(b.String(), "\n")
}

type rawSecret struct {
	Name       string `json:"name"`
	CreateTime string `json:"createTime"`
}

type rawSecretVersion struct {
	Name       string `json:"name"`
	State      string `json:"state"`
	CreateTime string `json:"createTime"`
}

// SecretList lists secrets, lists a secret's versions, or (with show_value)
// accesses one version's payload.
func SecretList(ctx context.Context, runner gcloud.Runner, res *resolve.Resolver, secretName, projectID string, showValue bool, version string) (*SecretListResult, error) {
	project, err := res.Project(ctx, projectID)
	if err != nil {
		return nil, err
	}

	if secretName == "" {
		if showValue {
			return nil, gcloud.NewError(gcloud.ErrMissingArgument,
				"show_value requires a secret_name",
				"Pass secret_name=<name> together with show_value=true")
		}
		return listSecrets(ctx, runner, project)
	}

	if showValue {
		return accessSecret(ctx, runner, project, secretName, version)
	}
	return listVersions(ctx, runner, project, secretName)
}

func listSecrets(ctx context.Context, runner gcloud.Runner, project string) (*SecretListResult, error) {
	out, err := runner.Run(ctx, gcloud.TimeoutDescribe,
		"secrets", "list", "--project", project, "--format", "json")
	if err != nil {
		return nil, err
	}

	var raw []rawSecret
	if err := decodeJSON(out.Stdout, &raw); err != nil {
		return nil, err
	}

	result := &SecretListResult{Project: project, Secrets: []SecretInfo{}}
	for _, s := range raw {
		result.Secrets = append(result.Secrets, SecretInfo{
			Name:    shortResourceName(s.Name),
			Created: s.CreateTime,
		})
	}
	return result, nil
}

func listVersions(ctx context.Context, runner gcloud.Runner, project, secretName string) (*SecretListResult, error) {
	out, err := runner.Run(ctx, gcloud.TimeoutDescribe,
		"secrets", "versions", "list", secretName,
		"--project", project, "--format", "json")
	if err != nil {
		return nil, err
	}

	var raw []rawSecretVersion
	if err := decodeJSON(out.Stdout, &raw); err != nil {
		return nil, err
	}

	result := &SecretListResult{Project: project, Secret: secretName, Versions: []SecretVersion{}}
	for _, v := range raw {
		result.Versions = append(result.Versions, SecretVersion{
			Name:    shortResourceName(v.Name),
			State:   v.State,
			Created: v.CreateTime,
		})
	}
	return result, nil
}

func accessSecret(ctx context.Context, runner gcloud.Runner, project, secretName, version string) (*SecretListResult, error) {
	if version == "" {
		version = "latest"
	}
	out, err := runner.Run(ctx, gcloud.TimeoutDescribe,
		"secrets", "versions", "access", version,
		"--secret", secretName,
		"--project", project)
	if err != nil {
		return nil, err
	}
	return &SecretListResult{
		Project: project,
		Secret:  secretName,
		Version: version,
		Value:   out.Stdout,
	}, nil
}

// shortResourceName trims a full resource path (projects/p/secrets/x) to its
// final element.
func shortResourceName(name string) string {
	if i := strings.LastIndex(name, "/"); i >= 0 {
		return name[i+1:]
	}
	return name
}
