// Package core implements the gate: resolving the merge base against a
// mainline through a throwaway remote, and style-checking the commits
// the branch adds beyond it.
package core

import (
	"context"
	"fmt"
	"strings"

	"github.com/patchgate/patchgate/internal/config"
	"github.com/patchgate/patchgate/internal/models"
	"github.com/patchgate/patchgate/internal/proc"
)

// Progress is called with human-readable status lines as a run advances.
type Progress func(line string)

// Result contains the outcome of a full gate run.
type Result struct {
	Remote   models.TempRemote
	Ancestor string
	Head     string
	Commits  int
	Verdict  models.Verdict
	Skipped  bool
	Warnings []string
}

// Run executes the gate against the configured mainline: register a
// uniquely named temporary remote, fetch the mainline branch through
// it, find the merge base with HEAD, and run the checker over every
// commit in between.
//
// Past registration the temporary remote is removed on every exit path,
// including checker failure. A removal failure after an otherwise clean
// run fails the run. A process killed before the deferred removal runs
// leaves the remote behind; its pid-qualified name keeps later runs
// unaffected.
func Run(ctx context.Context, cfg *config.Config, runner proc.Runner, target models.RepoTarget, progress Progress) (res *Result, err error) {
	if progress == nil {
		progress = func(string) {}
	}

	if err := validateTarget(target); err != nil {
		return nil, err
	}

	rem := models.NewTempRemote(target.RemoteURL(cfg.URLTemplate))
	res = &Result{Remote: rem}

	// Step 1: Register the temporary remote. Nothing to clean up if
	// this fails.
	if err := registerRemote(ctx, runner, rem); err != nil {
		return res, err
	}

	// From here on the remote must be removed no matter how the run ends.
	defer func() {
		rmErr := deregisterRemote(ctx, runner, rem)
		if rmErr == nil {
			return
		}
		if err == nil && res.Verdict.Passed() {
			err = fmt.Errorf("%w: %w", ErrCleanup, rmErr)
			return
		}
		res.Warnings = append(res.Warnings,
			fmt.Sprintf("temporary remote %s could not be removed: %v", rem.Name, rmErr))
	}()

	// Step 2: Fetch the mainline and find the closest common ancestor.
	progress(fmt.Sprintf("Fetching %s from %s...", cfg.MainlineBranch, rem.URL))
	ancestor, err := ResolveAncestor(ctx, runner, rem, cfg.MainlineBranch)
	if err != nil {
		return res, err
	}
	res.Ancestor = ancestor

	// Step 3: Check every commit the branch adds beyond the ancestor.
	head, err := resolveHead(ctx, runner)
	if err != nil {
		return res, err
	}
	res.Head = head

	check, err := CheckRange(ctx, cfg, runner, models.CommitRange{Ancestor: ancestor, Head: head}, progress)
	if err != nil {
		return res, err
	}
	res.Commits = check.Commits
	res.Verdict = check.Verdict
	res.Skipped = check.Skipped

	return res, nil
}

// validateTarget rejects targets that would expand into a nonsense URL.
func validateTarget(target models.RepoTarget) error {
	if target.Namespace == "" {
		return fmt.Errorf("namespace cannot be empty")
	}
	if target.Name == "" {
		return fmt.Errorf("repository name cannot be empty")
	}
	if strings.ContainsAny(target.Namespace+target.Name, " \t\n") {
		return fmt.Errorf("namespace and repository name cannot contain whitespace")
	}
	return nil
}
