package testutil

import (
	"context"
	"os/exec"
	"sync"

	"github.com/ariel-frischer/claude-notify/internal/notify"
)

// CallRecord records a single tool invocation.
type CallRecord struct {
	Name string
	Args []string
}

// MockRunner is a notify.Runner that records calls instead of running tools.
type MockRunner struct {
	mu      sync.Mutex
	tools   map[string]bool
	outputs map[string]notify.Output
	errs    map[string]error
	calls   []CallRecord
}

// NewMockRunner creates a runner where only the named tools are on PATH.
func NewMockRunner(tools ...string) *MockRunner {
	m := &MockRunner{
		tools:   map[string]bool{},
		outputs: map[string]notify.Output{},
		errs:    map[string]error{},
	}
	for _, tool := range tools {
		m.tools[tool] = true
	}
	return m
}

// WithOutput configures what a tool prints.
func (m *MockRunner) WithOutput(name string, out notify.Output) *MockRunner {
	m.outputs[name] = out
	return m
}

// WithError configures a tool to fail.
func (m *MockRunner) WithError(name string, err error) *MockRunner {
	m.errs[name] = err
	return m
}

// LookPath reports configured tools as found.
func (m *MockRunner) LookPath(file string) (string, error) {
	if m.tools[file] {
		return "/usr/bin/" + file, nil
	}
	return "", exec.ErrNotFound
}

// Run records the call and returns the configured output.
func (m *MockRunner) Run(_ context.Context, name string, args ...string) (notify.Output, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, CallRecord{Name: name, Args: append([]string(nil), args...)})
	return m.outputs[name], m.errs[name]
}

// Calls returns every recorded invocation.
func (m *MockRunner) Calls() []CallRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]CallRecord(nil), m.calls...)
}
