package models

// Verdict is the outcome of a checker run over a commit range.
type Verdict struct {
	// ExitCode is the checker's exit code; zero means every commit passed.
	ExitCode int
}

// Passed reports whether the checker accepted every commit in the range.
func (v Verdict) Passed() bool {
	return v.ExitCode == 0
}
