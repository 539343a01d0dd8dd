// Package runtime detects whether hi-gcloud is running inside Google Cloud Shell.
// The Info struct is resolved once at startup and passed down as a value parameter.
// Detection is diagnostic only — it never joins parameter resolution.
package runtime

import "os"

// Info holds runtime environment detection results.
type Info struct {
	CloudShell bool   // true when running in Google Cloud Shell
	Project    string // DEVSHELL_PROJECT_ID when set (informational)
}

// Detect reads Cloud Shell env vars and returns runtime info.
// CLOUD_SHELL=true is set by Google in every Cloud Shell session; the
// DEVSHELL_PROJECT_ID var carries the project selected in the console.
func Detect() Info {
	if os.Getenv("CLOUD_SHELL") != "true" {
		return Info{}
	}
	return Info{
		CloudShell: true,
		Project:    os.Getenv("DEVSHELL_PROJECT_ID"),
	}
}
