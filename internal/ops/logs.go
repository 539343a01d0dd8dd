package ops

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/su-record/hi-gcloud/internal/gcloud"
	"github.com/su-record/hi-gcloud/internal/resolve"
)

const (
	defaultLogLimit = 50
	maxLogLimit     = 1000
)

// LogEntry is a single rendered log line.
type LogEntry struct {
	Timestamp string `json:"timestamp"`
	Severity  string `json:"severity"`
	Message   string `json:"message"`
	LogName   string `json:"log_name,omitempty"`
}

// LogsResult contains the result of a log query.
type LogsResult struct {
	Project string     `json:"project"`
	Filter  string     `json:"filter"`
	Entries []LogEntry `json:"entries"`
}

// Text renders entries newest-first, one line each.
func (r *LogsResult) Text() string {
	if len(r.Entries) == 0 {
		return fmt.Sprintf("No logs found for project %s in the selected time range.\n%s", r.Project, nextAfterLogs)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%d log entries for project %s\n", len(r.Entries), r.Project)
	for _, e := range r.Entries {
		fmt.Fprintf(&b, "%s  %-9s %s\n", e.Timestamp, e.Severity, e.Message)
	}
	b.WriteString(nextAfterLogs)
	return b.String()
}

// rawLogEntry mirrors the fields of gcloud logging read --format=json output
// that we render.
type rawLogEntry struct {
	Timestamp   string         `json:"timestamp"`
	Severity    string         `json:"severity"`
	TextPayload string         `json:"textPayload"`
	JSONPayload map[string]any `json:"jsonPayload"`
	LogName     string         `json:"logName"`
}

// LogsRead queries Cloud Logging with a composed filter: the time-range
// clause AND-ed with the caller's own filter expression.
func LogsRead(ctx context.Context, runner gcloud.Runner, res *resolve.Resolver, filter, projectID, timeRange string, limit int) (*LogsResult, error) {
	project, err := res.Project(ctx, projectID)
	if err != nil {
		return nil, err
	}

	fullFilter := composeLogFilter(filter, timeRange)
	entries, err := readLogEntries(ctx, runner, project, fullFilter, limit)
	if err != nil {
		return nil, err
	}
	return &LogsResult{Project: project, Filter: fullFilter, Entries: entries}, nil
}

// composeLogFilter ANDs a timestamp floor onto the user filter.
func composeLogFilter(filter, timeRange string) string {
	since := parseTimeRange(timeRange).UTC().Format(time.RFC3339)
	clause := fmt.Sprintf("timestamp>=%q", since)
	if strings.TrimSpace(filter) == "" {
		return clause
	}
	return fmt.Sprintf("%s AND %s", strings.TrimSpace(filter), clause)
}

// readLogEntries issues one gcloud logging read and parses its JSON output.
func readLogEntries(ctx context.Context, runner gcloud.Runner, project, filter string, limit int) ([]LogEntry, error) {
	if limit <= 0 {
		limit = defaultLogLimit
	}
	if limit > maxLogLimit {
		limit = maxLogLimit
	}

	out, err := runner.Run(ctx, gcloud.TimeoutLogging,
		"logging", "read", filter,
		"--project", project,
		"--limit", strconv.Itoa(limit),
		"--order", "desc",
		"--format", "json")
	if err != nil {
		return nil, err
	}

	var raw []rawLogEntry
	if err := decodeJSON(out.Stdout, &raw); err != nil {
		return nil, err
	}

	entries := make([]LogEntry, 0, len(raw))
	for _, e := range raw {
		entries = append(entries, LogEntry{
			Timestamp: e.Timestamp,
			Severity:  e.Severity,
			Message:   logMessage(e),
			LogName:   e.LogName,
		})
	}
	return entries, nil
}

// logMessage prefers textPayload; structured payloads are compacted to JSON.
func logMessage(e rawLogEntry) string {
	if e.TextPayload != "" {
		return e.TextPayload
	}
	if len(e.JSONPayload) > 0 {
		if b, err := json.Marshal(e.JSONPayload); err == nil {
			return string(b)
		}
	}
	return "(no payload)"
}
