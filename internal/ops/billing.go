package ops

import (
	"context"
	"fmt"
	"strings"

	"github.com/su-record/hi-gcloud/internal/gcloud"
	"github.com/su-record/hi-gcloud/internal/resolve"
)

// BillingInfoResult describes a project's billing linkage.
type BillingInfoResult struct {
	Project        string `json:"project"`
	BillingEnabled bool   `json:"billing_enabled"`
	AccountID      string `json:"account_id,omitempty"`
	AccountName    string `json:"account_name,omitempty"`
	AccountOpen    bool   `json:"account_open,omitempty"`
}

// Text renders the billing report.
func (r *BillingInfoResult) Text() string {
	if !r.BillingEnabled {
		return fmt.Sprintf("Billing is not enabled for project %s.\nLink an account: gcloud billing projects link %s --billing-account=<id>", r.Project, r.Project)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Billing enabled for project %s\n", r.Project)
	fmt.Fprintf(&b, "Account: %s", r.AccountID)
	if r.AccountName != "" {
		fmt.Fprintf(&b, " (%s)", r.AccountName)
	}
	b.WriteString("\n")
	if r.AccountID != "" && !r.AccountOpen {
		b.WriteString("Warning: the linked billing account is closed\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

type rawProjectBilling struct {
	BillingAccountName string `json:"billingAccountName"`
	BillingEnabled     bool   `json:"billingEnabled"`
}

type rawBillingAccount struct {
	DisplayName string `json:"displayName"`
	Open        bool   `json:"open"`
}

// BillingInfo describes the project's billing link, then — when linked —
// issues a second sequential call for the account's display name.
func BillingInfo(ctx context.Context, runner gcloud.Runner, res *resolve.Resolver, projectID string) (*BillingInfoResult, error) {
	project, err := res.Project(ctx, projectID)
	if err != nil {
		return nil, err
	}

	out, err := runner.Run(ctx, gcloud.TimeoutDescribe,
		"billing", "projects", "describe", project, "--format", "json")
	if err != nil {
		return nil, err
	}

	var pb rawProjectBilling
	if err := decodeJSON(out.Stdout, &pb); err != nil {
		return nil, err
	}

	result := &BillingInfoResult{
		Project:        project,
		BillingEnabled: pb.BillingEnabled,
		AccountID:      shortResourceName(pb.BillingAccountName),
	}
	if !pb.BillingEnabled || pb.BillingAccountName == "" {
		return result, nil
	}

	out, err = runner.Run(ctx, gcloud.TimeoutDescribe,
		"billing", "accounts", "describe", pb.BillingAccountName, "--format", "json")
	if err != nil {
		// The project linkage is already answered; account detail is
		// best-effort (often a separate permission).
		return result, nil
	}

	var acct rawBillingAccount
	if err := decodeJSON(out.Stdout, &acct); err != nil {
		return result, nil
	}
	result.AccountName = acct.DisplayName
	result.AccountOpen = acct.Open
	return result, nil
}
