package ops

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/su-record/hi-gcloud/internal/gcloud"
	"github.com/su-record/hi-gcloud/internal/resolve"
)

// defaultRowCap is appended when a query carries no LIMIT clause.
const defaultRowCap = 100

// readOnlyVerbs are the only statement openers sql_query accepts.
var readOnlyVerbs = map[string]bool{
	"SELECT":  true,
	"WITH":    true,
	"SHOW":    true,
	"EXPLAIN": true,
}

// mutatingKeywordPattern rejects a query when any mutating keyword appears
// anywhere in it, word-bounded and case-insensitive. "created_at" survives;
// "create table" does not.
var mutatingKeywordPattern = regexp.MustCompile(`(?i)\b(insert|update|delete|drop|alter|create|truncate|grant|revoke|merge|replace|rename)\b`)

// limitClausePattern detects an existing row cap.
var limitClausePattern = regexp.MustCompile(`(?i)\blimit\s+\d+`)

// ValidateQuery enforces the read-only contract before any subprocess runs.
// Returns the query with a row cap appended when none was given.
func ValidateQuery(query string) (string, error) {
	q := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(query), ";"))
	if q == "" {
		return "", gcloud.NewError(gcloud.ErrMissingArgument,
			"sql_query requires a query",
			"Pass query=<read-only SQL>")
	}

	verb := strings.ToUpper(strings.Fields(q)[0])
	if !readOnlyVerbs[verb] {
		return "", gcloud.NewError(gcloud.ErrQueryRejected,
			fmt.Sprintf("Query must start with a read-only verb, got '%s'", verb),
			"Only SELECT, WITH, SHOW, and EXPLAIN statements are accepted")
	}

	if m := mutatingKeywordPattern.FindString(q); m != "" {
		return "", gcloud.NewError(gcloud.ErrQueryRejected,
			fmt.Sprintf("Query contains mutating keyword '%s'", strings.ToUpper(m)),
			"Remove mutating statements; sql_query only validates read-only SQL")
	}

	if !limitClausePattern.MatchString(q) {
		q = fmt.Sprintf("%s LIMIT %d", q, defaultRowCap)
	}
	return q, nil
}

// SQLQueryResult carries the validated query and the connect invocation.
// The query is never executed here: Cloud SQL access needs an interactive
// connection, so the tool validates and hands back the exact command.
type SQLQueryResult struct {
	Instance       string `json:"instance"`
	Database       string `json:"database"`
	Project        string `json:"project"`
	State          string `json:"state,omitempty"`
	Version        string `json:"database_version,omitempty"`
	Query          string `json:"query"`
	ConnectCommand string `json:"connect_command"`
}

// Text renders the validation outcome and connect instructions.
func (r *SQLQueryResult) Text() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Instance %s (%s): %s\n", r.Instance, r.Project, r.State)
	if r.Version != "" {
		fmt.Fprintf(&b, "Engine: %s\n", r.Version)
	}
	fmt.Fprintf(&b, "Validated read-only query:\n  %s\n", r.Query)
	fmt.Fprintf(&b, "Connect: %s\n", r.ConnectCommand)
	b.WriteString(nextAfterSQL)
	return b.String()
}

// sqlInstanceDescribe mirrors gcloud sql instances describe --format=json.
type sqlInstanceDescribe struct {
	Name            string `json:"name"`
	State           string `json:"state"`
	DatabaseVersion string `json:"databaseVersion"`
}

// SQLQuery validates a read-only query and confirms the target instance
// exists. Validation happens before any subprocess is invoked.
func SQLQuery(ctx context.Context, runner gcloud.Runner, res *resolve.Resolver, instance, database, query, projectID string) (*SQLQueryResult, error) {
	if strings.TrimSpace(instance) == "" {
		return nil, gcloud.NewError(gcloud.ErrMissingArgument,
			"sql_query requires an instance name",
			"Pass instance=<cloud-sql-instance>")
	}
	if strings.TrimSpace(database) == "" {
		return nil, gcloud.NewError(gcloud.ErrMissingArgument,
			"sql_query requires a database name",
			"Pass database=<database-name>")
	}

	validated, err := ValidateQuery(query)
	if err != nil {
		return nil, err
	}

	project, err := res.Project(ctx, projectID)
	if err != nil {
		return nil, err
	}

	out, err := runner.Run(ctx, gcloud.TimeoutDescribe,
		"sql", "instances", "describe", instance,
		"--project", project,
		"--format", "json")
	if err != nil {
		return nil, err
	}

	var desc sqlInstanceDescribe
	if err := decodeJSON(out.Stdout, &desc); err != nil {
		return nil, err
	}

	return &SQLQueryResult{
		Instance:       instance,
		Database:       database,
		Project:        project,
		State:          desc.State,
		Version:        desc.DatabaseVersion,
		Query:          validated,
		ConnectCommand: fmt.Sprintf("gcloud sql connect %s --database=%s --project=%s", instance, database, project),
	}, nil
}
