// Package config reads and writes the per-directory project config file
// that gates the tool surface and supplies default project/region values.
package config

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
)

// FileName is the well-known config filename resolved against the working directory.
const FileName = ".hi-gcloud.json"

// ProjectConfig is the persisted per-directory configuration.
// Enabled is a pointer so a legacy file that omits the field entirely
// is distinguishable from an explicit "enabled": false marker.
type ProjectConfig struct {
	Enabled   *bool  `json:"enabled,omitempty"`
	ProjectID string `json:"project_id,omitempty"`
	Region    string `json:"region,omitempty"`
	Account   string `json:"account,omitempty"`
}

// IsEnabled reports whether the config permits tool operations.
// An omitted enabled field (legacy shape) counts as enabled.
func (c *ProjectConfig) IsEnabled() bool {
	return c.Enabled == nil || *c.Enabled
}

// ReadResult is the outcome of a single config read.
type ReadResult struct {
	Exists   bool
	Disabled bool
	Config   *ProjectConfig
	Err      string
}

// Store reads and writes the config file in a fixed directory.
// Every Read hits the filesystem — there is no cache, so a config edit
// is observed by the very next read.
type Store struct {
	fs  afero.Fs
	dir string
}

// NewStore creates a Store over the given filesystem and directory.
func NewStore(fs afero.Fs, dir string) *Store {
	return &Store{fs: fs, dir: dir}
}

// NewOSStore creates a Store over the real filesystem.
func NewOSStore(dir string) *Store {
	return NewStore(afero.NewOsFs(), dir)
}

// Path returns the full path of the config file.
func (s *Store) Path() string {
	return filepath.Join(s.dir, FileName)
}

// Read loads and validates the config file.
//
// Outcomes:
//   - missing file → {Exists: false}
//   - unparseable JSON → {Exists: true, Err: parse detail}
//   - enabled: false → {Exists: true, Disabled: true, Config}
//   - enabled (explicit or legacy omission) without project_id → {Exists: true, Err}
//   - enabled with project_id → {Exists: true, Config}
func (s *Store) Read() ReadResult {
	b, err := afero.ReadFile(s.fs, s.Path())
	if err != nil {
		return ReadResult{Exists: false}
	}

	var cfg ProjectConfig
	if err := json.Unmarshal(b, &cfg); err != nil {
		return ReadResult{Exists: true, Err: fmt.Sprintf("parse %s: %v", FileName, err)}
	}

	if !cfg.IsEnabled() {
		return ReadResult{Exists: true, Disabled: true, Config: &cfg}
	}

	if cfg.ProjectID == "" {
		return ReadResult{Exists: true, Err: fmt.Sprintf("%s has enabled operations but no project_id", FileName)}
	}

	return ReadResult{Exists: true, Config: &cfg}
}

// Write serializes cfg as pretty-printed JSON to the config path,
// overwriting any existing file.
func (s *Store) Write(cfg *ProjectConfig) error {
	b, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	b = append(b, '\n')
	if err := afero.WriteFile(s.fs, s.Path(), b, 0644); err != nil {
		return fmt.Errorf("write %s: %w", FileName, err)
	}
	return nil
}

// WriteDisabled writes the pure disabled marker: {"enabled": false}.
// No other field is persisted.
func (s *Store) WriteDisabled() error {
	disabled := false
	return s.Write(&ProjectConfig{Enabled: &disabled})
}
