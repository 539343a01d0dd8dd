package gcloud

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/Masterminds/semver/v3"
)

// Command timeout constants. Metadata queries are short; data-returning
// queries get more room. Ops pass these to Run explicitly.
const (
	TimeoutProbe    = 5 * time.Second
	TimeoutMetadata = 10 * time.Second
	TimeoutDescribe = 15 * time.Second
	TimeoutStorage  = 30 * time.Second
	TimeoutLogging  = 60 * time.Second
)

// maxOutputBytes caps captured subprocess output per stream.
const maxOutputBytes = 1 << 20

// truncationMarker is appended when captured output exceeds maxOutputBytes.
const truncationMarker = "\n... [output truncated]"

// unsetSentinel is gcloud's "no value configured" marker on get-value output.
const unsetSentinel = "(unset)"

// minRelease is the oldest Google Cloud SDK release the tool surface is
// exercised against. Older installs work but get an advisory on status output.
var minRelease = semver.MustParse("400.0.0")

var releasePattern = regexp.MustCompile(`Google Cloud SDK (\d+\.\d+\.\d+)`)

// ExecResult holds captured output of one successful command.
type ExecResult struct {
	Stdout string
	Stderr string
}

// AuthStatus is the composed result of the auth check.
type AuthStatus struct {
	Authenticated bool   `json:"authenticated"`
	Account       string `json:"account,omitempty"`
	Project       string `json:"project,omitempty"`
	Error         *Error `json:"-"`
}

// Runner executes gcloud commands. The production implementation is CLI;
// tests use Mock.
type Runner interface {
	// Run executes gcloud with the given args under a hard timeout.
	// Non-zero exit and timeout both surface as a classified *Error.
	Run(ctx context.Context, timeout time.Duration, args ...string) (*ExecResult, error)
	// DefaultProject returns gcloud's own configured default project,
	// or "" when none is set.
	DefaultProject(ctx context.Context) (string, error)
	// DefaultRegion returns gcloud's configured default region (run/region,
	// falling back to compute/region), or "" when none is set.
	DefaultRegion(ctx context.Context) (string, error)
	// CheckAuth composes active-account and default-project lookups.
	// Short-circuits with ErrNotInstalled when the binary cannot be found.
	CheckAuth(ctx context.Context) *AuthStatus
	// ReleaseAdvisory returns a human-readable note when the discovered SDK
	// release is older than minRelease, or "" when current or unknown.
	ReleaseAdvisory() string
}

// CLI runs the real gcloud binary. The discovered binary path and release
// are cached per instance once found — the installation does not change
// within a process run. Reset clears the cache for tests.
type CLI struct {
	mu      sync.Mutex
	path    string
	release string
}

var _ Runner = (*CLI)(nil)

// NewCLI creates a CLI runner with no binary resolved yet.
func NewCLI() *CLI {
	return &CLI{}
}

// Reset clears the cached binary path and release, forcing rediscovery on
// the next call.
func (c *CLI) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.path = ""
	c.release = ""
}

// locate resolves the gcloud binary, probing all candidate paths
// concurrently with a --version invocation and taking the first success.
// Losing probes are read-only and discarded.
func (c *CLI) locate(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.path != "" {
		return c.path, nil
	}

	candidates := candidatePaths()
	if len(candidates) == 0 {
		return "", notInstalledError()
	}

	probeCtx, cancel := context.WithTimeout(ctx, TimeoutProbe)
	defer cancel()

	type probe struct {
		path    string
		release string
	}
	found := make(chan probe, len(candidates))
	var wg sync.WaitGroup
	for _, cand := range candidates {
		wg.Add(1)
		go func(bin string) {
			defer wg.Done()
			out, err := exec.CommandContext(probeCtx, bin, "--version").Output()
			if err != nil {
				return
			}
			found <- probe{path: bin, release: parseRelease(string(out))}
		}(cand)
	}
	go func() {
		wg.Wait()
		close(found)
	}()

	for p := range found {
		cancel() // discard remaining probes
		c.path = p.path
		c.release = p.release
		return c.path, nil
	}
	return "", notInstalledError()
}

// candidatePaths returns gcloud binary candidates: PATH lookup first,
// then well-known install locations that exist on disk.
func candidatePaths() []string {
	var out []string
	seen := map[string]bool{}
	add := func(p string) {
		if p != "" && !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}

	if p, err := exec.LookPath("gcloud"); err == nil {
		add(p)
	}

	wellKnown := []string{
		"/usr/lib/google-cloud-sdk/bin/gcloud",
		"/opt/google-cloud-sdk/bin/gcloud",
		"/usr/local/google-cloud-sdk/bin/gcloud",
		"/snap/google-cloud-cli/current/bin/gcloud",
	}
	if home, err := os.UserHomeDir(); err == nil {
		wellKnown = append(wellKnown, filepath.Join(home, "google-cloud-sdk", "bin", "gcloud"))
	}
	for _, p := range wellKnown {
		if _, err := os.Stat(p); err == nil {
			add(p)
		}
	}
	return out
}

func parseRelease(versionOutput string) string {
	m := releasePattern.FindStringSubmatch(versionOutput)
	if len(m) == 2 {
		return m[1]
	}
	return ""
}

func notInstalledError() *Error {
	return NewError(ErrNotInstalled,
		"gcloud CLI not found on PATH or in well-known install locations",
		"Install the Google Cloud SDK: https://cloud.google.com/sdk/docs/install")
}

// Run executes gcloud with args under a hard timeout. CommandContext kills
// the subprocess on expiry — it is never left detached.
func (c *CLI) Run(ctx context.Context, timeout time.Duration, args ...string) (*ExecResult, error) {
	bin, err := c.locate(ctx)
	if err != nil {
		return nil, err
	}

	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, bin, args...)
	stdout := &limitedBuffer{max: maxOutputBytes}
	stderr := &limitedBuffer{max: maxOutputBytes}
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	runErr := cmd.Run()
	if runErr == nil {
		return &ExecResult{Stdout: stdout.String(), Stderr: stderr.String()}, nil
	}

	if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
		return nil, NewError(ErrUnknown,
			fmt.Sprintf("gcloud %s timed out after %s", strings.Join(args, " "), timeout),
			"Narrow the query (smaller time_range or limit) or retry when the API is responsive")
	}

	combined := strings.TrimSpace(stderr.String() + "\n" + stdout.String())
	if combined == "" {
		combined = runErr.Error()
	}
	return nil, Classify(combined)
}

// DefaultProject queries gcloud's own persisted default project.
// The (unset) sentinel and empty output both mean "no default", not a value.
func (c *CLI) DefaultProject(ctx context.Context) (string, error) {
	res, err := c.Run(ctx, TimeoutMetadata, "config", "get-value", "project")
	if err != nil {
		return "", err
	}
	return sentinelValue(res.Stdout), nil
}

// DefaultRegion queries run/region, then compute/region.
func (c *CLI) DefaultRegion(ctx context.Context) (string, error) {
	res, err := c.Run(ctx, TimeoutMetadata, "config", "get-value", "run/region")
	if err != nil {
		return "", err
	}
	if v := sentinelValue(res.Stdout); v != "" {
		return v, nil
	}
	res, err = c.Run(ctx, TimeoutMetadata, "config", "get-value", "compute/region")
	if err != nil {
		return "", err
	}
	return sentinelValue(res.Stdout), nil
}

func sentinelValue(stdout string) string {
	v := strings.TrimSpace(stdout)
	if v == "" || v == unsetSentinel {
		return ""
	}
	return v
}

// CheckAuth issues two sequential queries: active account, then default
// project. A missing binary short-circuits without attempting either.
func (c *CLI) CheckAuth(ctx context.Context) *AuthStatus {
	if _, err := c.locate(ctx); err != nil {
		return &AuthStatus{Error: asError(err)}
	}

	res, err := c.Run(ctx, TimeoutMetadata, "auth", "list", "--filter=status:ACTIVE", "--format=value(account)")
	if err != nil {
		return &AuthStatus{Error: asError(err)}
	}

	account := strings.TrimSpace(res.Stdout)
	if account == "" {
		return &AuthStatus{Authenticated: false}
	}

	project, err := c.DefaultProject(ctx)
	if err != nil {
		return &AuthStatus{Authenticated: true, Account: account, Error: asError(err)}
	}
	return &AuthStatus{Authenticated: true, Account: account, Project: project}
}

// ReleaseAdvisory compares the probed SDK release against minRelease.
func (c *CLI) ReleaseAdvisory() string {
	c.mu.Lock()
	release := c.release
	c.mu.Unlock()

	if release == "" {
		return ""
	}
	v, err := semver.NewVersion(release)
	if err != nil {
		return ""
	}
	if v.LessThan(minRelease) {
		return fmt.Sprintf("Google Cloud SDK %s is older than the supported minimum %s; run: gcloud components update", release, minRelease)
	}
	return ""
}

func asError(err error) *Error {
	var ge *Error
	if errors.As(err, &ge) {
		return ge
	}
	return NewError(ErrUnknown, err.Error(), "")
}

// limitedBuffer is a bounded write sink. Writes past max are dropped and
// the rendered string gains a truncation marker.
type limitedBuffer struct {
	buf       bytes.Buffer
	max       int
	truncated bool
}

func (b *limitedBuffer) Write(p []byte) (int, error) {
	n := len(p)
	remain := b.max - b.buf.Len()
	if remain <= 0 {
		if n > 0 {
			b.truncated = true
		}
		return n, nil
	}
	if len(p) > remain {
		p = p[:remain]
		b.truncated = true
	}
	b.buf.Write(p)
	return n, nil
}

func (b *limitedBuffer) String() string {
	if b.truncated {
		return b.buf.String() + truncationMarker
	}
	return b.buf.String()
}
