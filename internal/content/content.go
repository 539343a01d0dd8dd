// Package content embeds the static templates shipped with the binary.
package content

import (
	"embed"
	"fmt"
)

//go:embed templates/*
var templateFS embed.FS

// GetTemplate returns the content of a named template file.
// The name should include the file extension (e.g., "mcp-config.json").
func GetTemplate(name string) (string, error) {
	data, err := templateFS.ReadFile("templates/" + name)
	if err != nil {
		return "", fmt.Errorf("template %q not found", name)
	}
	return string(data), nil
}
