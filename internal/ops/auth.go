package ops

import (
	"context"
	"fmt"
	"strings"

	"github.com/su-record/hi-gcloud/internal/gcloud"
	"github.com/su-record/hi-gcloud/internal/runtime"
)

// Account is one credentialed gcloud account.
type Account struct {
	Account string `json:"account"`
	Status  string `json:"status,omitempty"`
}

// AuthReportResult describes the CLI's authentication state.
type AuthReportResult struct {
	Authenticated bool      `json:"authenticated"`
	Account       string    `json:"account,omitempty"`
	Project       string    `json:"project,omitempty"`
	Accounts      []Account `json:"accounts,omitempty"`
	CloudShell    bool      `json:"cloud_shell,omitempty"`
	Advisory      string    `json:"advisory,omitempty"`
}

// Text renders the auth report.
func (r *AuthReportResult) Text() string {
	var b strings.Builder
	if r.Authenticated {
		fmt.Fprintf(&b, "Authenticated as %s\n", r.Account)
		fmt.Fprintf(&b, "Default project: %s\n", valueOrUnset(r.Project))
	} else {
		b.WriteString("Not authenticated\n")
		b.WriteString(nextAfterAuthFail + "\n")
	}
	for _, a := range r.Accounts {
		fmt.Fprintf(&b, "  %s  %s\n", a.Account, a.Status)
	}
	if r.CloudShell {
		b.WriteString("Running in Google Cloud Shell\n")
	}
	if r.Advisory != "" {
		fmt.Fprintf(&b, "Note: %s\n", r.Advisory)
	}
	return strings.TrimRight(b.String(), "\n")
}

type rawAccount struct {
	Account string `json:"account"`
	Status  string `json:"status"`
}

// AuthReport composes the runner's auth check with an optional full account
// listing. An unauthenticated CLI is a normal outcome; a missing binary or
// failed command is an error.
func AuthReport(ctx context.Context, runner gcloud.Runner, rt runtime.Info, showAllAccounts bool) (*AuthReportResult, error) {
	status := runner.CheckAuth(ctx)
	if status.Error != nil {
		return nil, status.Error
	}

	result := &AuthReportResult{
		Authenticated: status.Authenticated,
		Account:       status.Account,
		Project:       status.Project,
		CloudShell:    rt.CloudShell,
		Advisory:      runner.ReleaseAdvisory(),
	}

	if showAllAccounts {
		out, err := runner.Run(ctx, gcloud.TimeoutMetadata, "auth", "list", "--format", "json")
		if err != nil {
			return nil, err
		}
		var raw []rawAccount
		if err := decodeJSON(out.Stdout, &raw); err != nil {
			return nil, err
		}
		for _, a := range raw {
			result.Accounts = append(result.Accounts, Account{Account: a.Account, Status: a.Status})
		}
	}
	return result, nil
}
