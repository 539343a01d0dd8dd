// Tests for: content.go — embedded template access.

package content

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestGetTemplate_MCPConfig(t *testing.T) {
	t.Parallel()
	got, err := GetTemplate("mcp-config.json")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(got, "hi-gcloud") {
		t.Errorf("template content: %q", got)
	}
	var v map[string]any
	if err := json.Unmarshal([]byte(got), &v); err != nil {
		t.Errorf("template is not valid JSON: %v", err)
	}
}

func TestGetTemplate_Unknown(t *testing.T) {
	t.Parallel()
	if _, err := GetTemplate("nope.txt"); err == nil {
		t.Error("expected error for unknown template")
	}
}
