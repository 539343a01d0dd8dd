package gcloud

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"
)

// Compile-time interface check.
var _ Runner = (*Mock)(nil)

// Mock is a configurable mock for the Runner interface.
// Run output is keyed by a space-joined args prefix; the longest matching
// prefix wins, so tests can register both broad and specific responses.
type Mock struct {
	mu sync.RWMutex

	outputs   map[string]ExecResult // args prefix -> result
	runErrors map[string]error      // args prefix -> error
	project   string
	region    string
	auth      *AuthStatus
	advisory  string

	// Error overrides: method name -> error
	errors map[string]error

	calls [][]string
}

// NewMock creates a new configurable mock.
func NewMock() *Mock {
	return &Mock{
		outputs:   make(map[string]ExecResult),
		runErrors: make(map[string]error),
		errors:    make(map[string]error),
	}
}

// WithOutput sets the stdout returned for commands whose args start with prefix.
func (m *Mock) WithOutput(prefix, stdout string) *Mock {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.outputs[prefix] = ExecResult{Stdout: stdout}
	return m
}

// WithRunError sets the error returned for commands whose args start with prefix.
func (m *Mock) WithRunError(prefix string, err error) *Mock {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.runErrors[prefix] = err
	return m
}

// WithDefaultProject sets the ambient default project.
func (m *Mock) WithDefaultProject(project string) *Mock {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.project = project
	return m
}

// WithDefaultRegion sets the ambient default region.
func (m *Mock) WithDefaultRegion(region string) *Mock {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.region = region
	return m
}

// WithAuthStatus sets the CheckAuth result.
func (m *Mock) WithAuthStatus(status *AuthStatus) *Mock {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.auth = status
	return m
}

// WithAdvisory sets the release advisory string.
func (m *Mock) WithAdvisory(advisory string) *Mock {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.advisory = advisory
	return m
}

// WithError sets an error override for a method name
// (DefaultProject, DefaultRegion, Run).
func (m *Mock) WithError(method string, err error) *Mock {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errors[method] = err
	return m
}

// Calls returns all recorded Run invocations.
func (m *Mock) Calls() [][]string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([][]string, len(m.calls))
	copy(out, m.calls)
	return out
}

// Run records the call and returns the longest-prefix-matched output.
func (m *Mock) Run(_ context.Context, _ time.Duration, args ...string) (*ExecResult, error) {
	m.mu.Lock()
	m.calls = append(m.calls, args)
	m.mu.Unlock()

	m.mu.RLock()
	defer m.mu.RUnlock()

	if err := m.errors["Run"]; err != nil {
		return nil, err
	}

	joined := strings.Join(args, " ")

	// Longest prefix wins; sort keys for determinism.
	keys := make([]string, 0, len(m.runErrors)+len(m.outputs))
	for k := range m.runErrors {
		keys = append(keys, k)
	}
	for k := range m.outputs {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return len(keys[i]) > len(keys[j]) })

	for _, k := range keys {
		if !strings.HasPrefix(joined, k) {
			continue
		}
		if err, ok := m.runErrors[k]; ok {
			return nil, err
		}
		res := m.outputs[k]
		return &res, nil
	}
	return &ExecResult{}, nil
}

func (m *Mock) DefaultProject(_ context.Context) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if err := m.errors["DefaultProject"]; err != nil {
		return "", err
	}
	return m.project, nil
}

func (m *Mock) DefaultRegion(_ context.Context) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if err := m.errors["DefaultRegion"]; err != nil {
		return "", err
	}
	return m.region, nil
}

func (m *Mock) CheckAuth(_ context.Context) *AuthStatus {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.auth != nil {
		return m.auth
	}
	return &AuthStatus{}
}

func (m *Mock) ReleaseAdvisory() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.advisory
}
