// Package proc runs external commands on behalf of the gate.
package proc

import "context"

// Result holds the outcome of a captured command run.
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Runner defines the contract for external command execution.
// This interface enables mocking for testing the core package.
//
// A command that starts and exits non-zero is not an error: the exit
// code comes back in the result and callers decide what it means. The
// error return covers spawn failures and context cancellation only.
type Runner interface {
	// Run executes a command with stdout and stderr captured.
	Run(ctx context.Context, name string, args ...string) (*Result, error)

	// RunStreaming executes a command with stdout and stderr inherited
	// from the parent process, returning only the exit code.
	RunStreaming(ctx context.Context, name string, args ...string) (int, error)
}

// Verify that *ExecRunner implements Runner at compile time
var _ Runner = (*ExecRunner)(nil)
