package core

import (
	"context"
	"fmt"
	"strconv"

	"github.com/patchgate/patchgate/internal/models"
	"github.com/patchgate/patchgate/internal/proc"
)

// ResolveAncestor fetches the mainline branch through an already
// registered temporary remote and returns its merge base with the
// current branch tip.
func ResolveAncestor(ctx context.Context, runner proc.Runner, rem models.TempRemote, branch string) (string, error) {
	if err := fetchMainline(ctx, runner, rem, branch); err != nil {
		return "", err
	}
	return mergeBase(ctx, runner, rem, branch)
}

// fetchMainline downloads the mainline branch through the temporary
// remote. Progress output is captured, not shown; only failures matter.
func fetchMainline(ctx context.Context, runner proc.Runner, rem models.TempRemote, branch string) error {
	res, err := runner.Run(ctx, "git", "fetch", rem.Name, branch)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrFetch, err)
	}
	if res.ExitCode != 0 {
		return fmt.Errorf("%w: %s", ErrFetch, gitFailure(res))
	}
	return nil
}

// mergeBase finds the closest common ancestor of the fetched mainline
// and the current branch tip.
func mergeBase(ctx context.Context, runner proc.Runner, rem models.TempRemote, branch string) (string, error) {
	ref := rem.MainlineRef(branch)

	res, err := runner.Run(ctx, "git", "merge-base", ref, "HEAD")
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrNoMergeBase, err)
	}
	if res.ExitCode != 0 || res.Stdout == "" {
		if res.Stderr != "" {
			return "", fmt.Errorf("%w: %s", ErrNoMergeBase, res.Stderr)
		}
		return "", fmt.Errorf("%w: %s and HEAD share no history", ErrNoMergeBase, ref)
	}
	return res.Stdout, nil
}

// registerRemote adds the temporary remote to the repository.
func registerRemote(ctx context.Context, runner proc.Runner, rem models.TempRemote) error {
	res, err := runner.Run(ctx, "git", "remote", "add", rem.Name, rem.URL)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrRemoteRegistration, err)
	}
	if res.ExitCode != 0 {
		return fmt.Errorf("%w: %s", ErrRemoteRegistration, gitFailure(res))
	}
	return nil
}

// deregisterRemote removes the temporary remote again.
func deregisterRemote(ctx context.Context, runner proc.Runner, rem models.TempRemote) error {
	res, err := runner.Run(ctx, "git", "remote", "rm", rem.Name)
	if err != nil {
		return err
	}
	if res.ExitCode != 0 {
		return fmt.Errorf("git remote rm: %s", gitFailure(res))
	}
	return nil
}

// resolveHead resolves the current branch tip to a full commit id.
func resolveHead(ctx context.Context, runner proc.Runner) (string, error) {
	res, err := runner.Run(ctx, "git", "rev-parse", "HEAD")
	if err != nil {
		return "", fmt.Errorf("resolve HEAD: %w", err)
	}
	if res.ExitCode != 0 {
		return "", fmt.Errorf("resolve HEAD: %s", gitFailure(res))
	}
	return res.Stdout, nil
}

// countCommits returns how many commits the range contains.
func countCommits(ctx context.Context, runner proc.Runner, rng models.CommitRange) (int, error) {
	res, err := runner.Run(ctx, "git", "rev-list", "--count", rng.Spec())
	if err != nil {
		return 0, fmt.Errorf("count commits: %w", err)
	}
	if res.ExitCode != 0 {
		return 0, fmt.Errorf("count commits: %s", gitFailure(res))
	}

	n, err := strconv.Atoi(res.Stdout)
	if err != nil {
		return 0, fmt.Errorf("count commits: unexpected rev-list output %q", res.Stdout)
	}
	return n, nil
}

// gitFailure summarizes a failed git invocation for error messages.
func gitFailure(res *proc.Result) string {
	if res.Stderr != "" {
		return res.Stderr
	}
	return fmt.Sprintf("exit status %d", res.ExitCode)
}
