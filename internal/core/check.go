package core

import (
	"context"
	"fmt"

	"github.com/patchgate/patchgate/internal/config"
	"github.com/patchgate/patchgate/internal/models"
	"github.com/patchgate/patchgate/internal/proc"
)

// CheckResult contains the outcome of a checker run over a range.
type CheckResult struct {
	Range   models.CommitRange
	Commits int
	Verdict models.Verdict
	Skipped bool
}

// CheckRange runs the configured checker over every commit in the range,
// with the checker's output streamed straight to the user. An empty
// range passes trivially without invoking the checker. A checker that
// runs and rejects commits is not an error: the verdict carries its
// exit code.
func CheckRange(ctx context.Context, cfg *config.Config, runner proc.Runner, rng models.CommitRange, progress Progress) (*CheckResult, error) {
	if progress == nil {
		progress = func(string) {}
	}

	result := &CheckResult{Range: rng}

	n, err := countCommits(ctx, runner, rng)
	if err != nil {
		return nil, err
	}
	result.Commits = n

	if n == 0 {
		result.Skipped = true
		return result, nil
	}

	progress(fmt.Sprintf("Checking %d commit(s) since %s...", n, rng.Ancestor))

	args := append(append([]string{}, cfg.CheckerArgs...), rng.Spec())
	code, err := runner.RunStreaming(ctx, cfg.Checker, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrChecker, err)
	}
	result.Verdict = models.Verdict{ExitCode: code}

	return result, nil
}
