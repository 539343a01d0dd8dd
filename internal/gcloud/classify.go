package gcloud

import "strings"

// classification maps a lowercase substring of gcloud's error output to an
// error code and a remediation suggestion. The table is ordered: the first
// matching row wins. Extend by adding a row, not by generalizing the match.
type classification struct {
	substr     string
	code       string
	suggestion string
}

var classifications = []classification{
	{"executable file not found", ErrNotInstalled, "Install the Google Cloud SDK: https://cloud.google.com/sdk/docs/install"},
	{"command not found", ErrNotInstalled, "Install the Google Cloud SDK: https://cloud.google.com/sdk/docs/install"},
	{"no such file or directory", ErrNotInstalled, "Install the Google Cloud SDK: https://cloud.google.com/sdk/docs/install"},
	{"reauthentication required", ErrNotAuthenticated, "Run: gcloud auth login"},
	{"you do not currently have an active account", ErrNotAuthenticated, "Run: gcloud auth login"},
	{"credentials were not found", ErrNotAuthenticated, "Run: gcloud auth login (or gcloud auth application-default login)"},
	{"not logged in", ErrNotAuthenticated, "Run: gcloud auth login"},
	{"project property is not set", ErrNoProject, "Set a project: setup action=create project_id=<id>, or gcloud config set project <id>"},
	{"unable to determine project", ErrNoProject, "Set a project: setup action=create project_id=<id>, or gcloud config set project <id>"},
	{"project was not passed", ErrNoProject, "Set a project: setup action=create project_id=<id>, or gcloud config set project <id>"},
	{"permission denied", ErrPermissionDenied, "Check IAM roles for the active account, or switch accounts with gcloud auth login"},
	{"permission_denied", ErrPermissionDenied, "Check IAM roles for the active account, or switch accounts with gcloud auth login"},
	{"caller does not have permission", ErrPermissionDenied, "Check IAM roles for the active account, or switch accounts with gcloud auth login"},
	{"forbidden", ErrPermissionDenied, "Check IAM roles for the active account, or switch accounts with gcloud auth login"},
}

// Classify maps a failed command's combined error output to an *Error.
// Matching is case-insensitive; no match yields ErrUnknown with the raw
// output preserved in the message.
func Classify(output string) *Error {
	lower := strings.ToLower(output)
	for _, c := range classifications {
		if strings.Contains(lower, c.substr) {
			return NewError(c.code, firstLine(output), c.suggestion)
		}
	}
	return NewError(ErrUnknown, firstLine(output), "Inspect the full gcloud output; re-run with format=json for raw detail")
}

// firstLine trims the output to its first non-empty line for a compact message.
func firstLine(output string) string {
	for _, line := range strings.Split(strings.TrimSpace(output), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			return line
		}
	}
	return "gcloud command failed"
}
