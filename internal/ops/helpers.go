// Package ops implements the business logic of every tool operation:
// argument validation, parameter resolution, one gcloud command, rendering.
package ops

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var timeRangePattern = regexp.MustCompile(`^(\d+)(m|h|d)$`)

// parseTimeRange converts user-friendly time strings ("30m", "6h", "7d") to
// the instant that far in the past. Empty or unparseable input falls back to
// one hour ago — log queries degrade to a sane window instead of failing.
func parseTimeRange(s string) time.Time {
	matches := timeRangePattern.FindStringSubmatch(strings.TrimSpace(s))
	if len(matches) != 3 {
		return time.Now().Add(-1 * time.Hour)
	}
	n, err := strconv.Atoi(matches[1])
	if err != nil || n < 1 {
		return time.Now().Add(-1 * time.Hour)
	}
	switch matches[2] {
	case "m":
		return time.Now().Add(-time.Duration(n) * time.Minute)
	case "h":
		return time.Now().Add(-time.Duration(n) * time.Hour)
	case "d":
		return time.Now().Add(-time.Duration(n) * 24 * time.Hour)
	}
	return time.Now().Add(-1 * time.Hour)
}

// logSeverities is the Cloud Logging severity ladder.
var logSeverities = map[string]string{
	"DEFAULT":   "DEFAULT",
	"DEBUG":     "DEBUG",
	"INFO":      "INFO",
	"NOTICE":    "NOTICE",
	"WARN":      "WARNING",
	"WARNING":   "WARNING",
	"ERR":       "ERROR",
	"ERROR":     "ERROR",
	"CRITICAL":  "CRITICAL",
	"ALERT":     "ALERT",
	"EMERGENCY": "EMERGENCY",
}

// normalizeSeverity maps user input to a canonical Cloud Logging severity.
// Unknown severities are ignored (empty return), not rejected.
func normalizeSeverity(s string) string {
	return logSeverities[strings.ToUpper(strings.TrimSpace(s))]
}

// decodeJSON parses gcloud's --format=json output. Empty output is a valid
// empty result set, not a parse failure.
func decodeJSON(stdout string, v any) error {
	trimmed := strings.TrimSpace(stdout)
	if trimmed == "" {
		return nil
	}
	if err := json.Unmarshal([]byte(trimmed), v); err != nil {
		return fmt.Errorf("parse gcloud output: %w", err)
	}
	return nil
}

// nonEmptyLines splits line-oriented gcloud output, dropping blanks.
func nonEmptyLines(s string) []string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}

// Next-step suggestion lines appended to text renderings.
const (
	nextAfterSetupCreate = "Next: auth_status to verify credentials, then services_list to see enabled APIs."
	nextAfterSetupStatus = "Next: setup action=create project_id=<id> if no config exists yet."
	nextAfterLogs        = "Next: narrow with filter= or time_range=, or run_logs service=<name> for one service."
	nextAfterRunStatus   = "Next: run_logs service=<name> severity=ERROR to inspect recent errors."
	nextAfterSQL         = "Run the connect command in a terminal to execute the validated query."
	nextAfterAuthFail    = "Next: gcloud auth login, then auth_status again."
)
