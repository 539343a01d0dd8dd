// Tests for: sql.go — read-only query validation and the sql_query stub.

package ops

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/su-record/hi-gcloud/internal/gcloud"
)

func TestValidateQuery_AcceptsSelectAndAppendsLimit(t *testing.T) {
	t.Parallel()
	got, err := ValidateQuery("SELECT * FROM users")
	if err != nil {
		t.Fatal(err)
	}
	if got != "SELECT * FROM users LIMIT 100" {
		t.Errorf("got %q", got)
	}
}

func TestValidateQuery_KeepsExistingLimit(t *testing.T) {
	t.Parallel()
	got, err := ValidateQuery("select id from users limit 5")
	if err != nil {
		t.Fatal(err)
	}
	if strings.Count(strings.ToLower(got), "limit") != 1 {
		t.Errorf("limit duplicated: %q", got)
	}
}

func TestValidateQuery_Rejections(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		query string
	}{
		{"drop", "DROP TABLE users"},
		{"chained delete", "select 1; delete from x"},
		{"embedded update", "SELECT * FROM t WHERE EXISTS (UPDATE t2 SET a=1)"},
		{"insert", "insert into t values (1)"},
		{"truncate", "TRUNCATE t"},
		{"non-select verb", "VACUUM"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := ValidateQuery(tt.query)
			var ge *gcloud.Error
			if !errors.As(err, &ge) || ge.Code != gcloud.ErrQueryRejected {
				t.Errorf("ValidateQuery(%q) err = %v, want QUERY_REJECTED", tt.query, err)
			}
		})
	}
}

func TestValidateQuery_WordBoundary(t *testing.T) {
	t.Parallel()
	// Column names containing keyword substrings must survive.
	got, err := ValidateQuery("SELECT created_at, updated_at FROM events")
	if err != nil {
		t.Fatalf("created_at/updated_at falsely rejected: %v", err)
	}
	if !strings.Contains(got, "created_at") {
		t.Errorf("got %q", got)
	}
}

func TestValidateQuery_EmptyIsMissingArgument(t *testing.T) {
	t.Parallel()
	_, err := ValidateQuery("   ")
	var ge *gcloud.Error
	if !errors.As(err, &ge) || ge.Code != gcloud.ErrMissingArgument {
		t.Errorf("err = %v, want MISSING_ARGUMENT", err)
	}
}

func TestValidateQuery_CTEAccepted(t *testing.T) {
	t.Parallel()
	if _, err := ValidateQuery("WITH recent AS (SELECT 1) SELECT * FROM recent"); err != nil {
		t.Errorf("CTE rejected: %v", err)
	}
}

func TestSQLQuery_RejectsBeforeSubprocess(t *testing.T) {
	t.Parallel()
	m := gcloud.NewMock()
	res := testResolver(t, `{"enabled": true, "project_id": "p"}`, m)

	_, err := SQLQuery(context.Background(), m, res, "inst", "db", "DROP TABLE users", "")
	var ge *gcloud.Error
	if !errors.As(err, &ge) || ge.Code != gcloud.ErrQueryRejected {
		t.Fatalf("err = %v, want QUERY_REJECTED", err)
	}
	if len(m.Calls()) != 0 {
		t.Errorf("subprocess invoked %d times, want 0", len(m.Calls()))
	}
}

func TestSQLQuery_DescribesInstanceAndBuildsConnect(t *testing.T) {
	t.Parallel()
	m := gcloud.NewMock().WithOutput("sql instances describe",
		`{"name": "inst", "state": "RUNNABLE", "databaseVersion": "POSTGRES_16"}`)
	res := testResolver(t, `{"enabled": true, "project_id": "proj-1"}`, m)

	got, err := SQLQuery(context.Background(), m, res, "inst", "appdb", "SELECT * FROM users", "")
	if err != nil {
		t.Fatal(err)
	}
	if got.State != "RUNNABLE" {
		t.Errorf("State = %q", got.State)
	}
	if got.Query != "SELECT * FROM users LIMIT 100" {
		t.Errorf("Query = %q", got.Query)
	}
	want := "gcloud sql connect inst --database=appdb --project=proj-1"
	if got.ConnectCommand != want {
		t.Errorf("ConnectCommand = %q, want %q", got.ConnectCommand, want)
	}
}

func TestSQLQuery_MissingArguments(t *testing.T) {
	t.Parallel()
	m := gcloud.NewMock()
	res := testResolver(t, `{"enabled": true, "project_id": "p"}`, m)

	for _, tc := range []struct{ instance, database string }{
		{"", "db"},
		{"inst", ""},
	} {
		_, err := SQLQuery(context.Background(), m, res, tc.instance, tc.database, "SELECT 1", "")
		var ge *gcloud.Error
		if !errors.As(err, &ge) || ge.Code != gcloud.ErrMissingArgument {
			t.Errorf("(%q,%q) err = %v, want MISSING_ARGUMENT", tc.instance, tc.database, err)
		}
	}
}
