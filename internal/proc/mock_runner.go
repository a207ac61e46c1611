package proc

import (
	"context"
	"strings"
)

// MockRunner is a scripted Runner implementation for testing. Commands
// are keyed by their full command line joined with single spaces; any
// command line without a scripted result succeeds with empty output.
type MockRunner struct {
	// Results maps a command line to its scripted result.
	Results map[string]*Result
	// Errs maps a command line to a spawn error.
	Errs map[string]error
	// Calls records every command line in invocation order.
	Calls []string
	// StreamCalls records the command lines run with RunStreaming.
	StreamCalls []string
}

// NewMockRunner creates a new MockRunner for testing.
func NewMockRunner() *MockRunner {
	return &MockRunner{
		Results: make(map[string]*Result),
		Errs:    make(map[string]error),
	}
}

// Script sets the result returned for an exact command line.
func (m *MockRunner) Script(cmdline string, res *Result) {
	m.Results[cmdline] = res
}

// ScriptErr makes an exact command line fail to spawn.
func (m *MockRunner) ScriptErr(cmdline string, err error) {
	m.Errs[cmdline] = err
}

// Run returns the scripted result for the command line.
func (m *MockRunner) Run(ctx context.Context, name string, args ...string) (*Result, error) {
	k := cmdline(name, args)
	m.Calls = append(m.Calls, k)

	if err, ok := m.Errs[k]; ok {
		return nil, err
	}
	if res, ok := m.Results[k]; ok {
		return res, nil
	}
	return &Result{}, nil
}

// RunStreaming returns the scripted exit code for the command line.
func (m *MockRunner) RunStreaming(ctx context.Context, name string, args ...string) (int, error) {
	k := cmdline(name, args)
	m.Calls = append(m.Calls, k)
	m.StreamCalls = append(m.StreamCalls, k)

	if err, ok := m.Errs[k]; ok {
		return 0, err
	}
	if res, ok := m.Results[k]; ok {
		return res.ExitCode, nil
	}
	return 0, nil
}

// Called reports whether any recorded command line starts with prefix.
func (m *MockRunner) Called(prefix string) bool {
	for _, c := range m.Calls {
		if strings.HasPrefix(c, prefix) {
			return true
		}
	}
	return false
}

// CallCount returns how many recorded command lines start with prefix.
func (m *MockRunner) CallCount(prefix string) int {
	n := 0
	for _, c := range m.Calls {
		if strings.HasPrefix(c, prefix) {
			n++
		}
	}
	return n
}

func cmdline(name string, args []string) string {
	return strings.Join(append([]string{name}, args...), " ")
}

// Verify MockRunner implements Runner
var _ Runner = (*MockRunner)(nil)
