package core

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/patchgate/patchgate/internal/config"
	"github.com/patchgate/patchgate/internal/models"
	"github.com/patchgate/patchgate/internal/proc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Integration tests that run the full gate against real git repositories.

func requireGit(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}
}

func mustGit(t *testing.T, run *proc.ExecRunner, args ...string) string {
	t.Helper()
	res, err := run.Run(context.Background(), "git", args...)
	require.NoError(t, err)
	require.Equal(t, 0, res.ExitCode, "git %v: %s", args, res.Stderr)
	return res.Stdout
}

// gitRepo initializes a repository with a main branch and commit identity.
func gitRepo(t *testing.T, dir string) *proc.ExecRunner {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0755))

	run := proc.NewRunner(dir)
	mustGit(t, run, "init")
	mustGit(t, run, "checkout", "-b", "main")
	mustGit(t, run, "config", "user.email", "ci@example.com")
	mustGit(t, run, "config", "user.name", "CI")
	mustGit(t, run, "config", "commit.gpgsign", "false")
	return run
}

func commitFile(t *testing.T, run *proc.ExecRunner, dir, name, content, message string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
	mustGit(t, run, "add", name)
	mustGit(t, run, "commit", "-m", message)
}

func listRemotes(t *testing.T, run *proc.ExecRunner) []string {
	t.Helper()
	out := mustGit(t, run, "remote")
	if out == "" {
		return nil
	}
	return strings.Split(out, "\n")
}

// fixture is a bare mainline repository under <base>/remotes plus a work
// tree cloned from it with two extra commits on a feature branch.
type fixture struct {
	base     string
	work     string
	workGit  *proc.ExecRunner
	cfg      *config.Config
	target   models.RepoTarget
	ancestor string
}

func newFixture(t *testing.T) *fixture {
	requireGit(t)
	base := t.TempDir()

	seed := filepath.Join(base, "seed")
	seedGit := gitRepo(t, seed)
	commitFile(t, seedGit, seed, "README", "widget\n", "initial import")
	commitFile(t, seedGit, seed, "main.c", "int main(void) { return 0; }\n", "add main")
	ancestor := mustGit(t, seedGit, "rev-parse", "HEAD")

	remotes := filepath.Join(base, "remotes", "linux-bsp")
	require.NoError(t, os.MkdirAll(remotes, 0755))
	baseGit := proc.NewRunner(base)
	mustGit(t, baseGit, "clone", "--bare", seed, filepath.Join(remotes, "widget.git"))

	work := filepath.Join(base, "work")
	mustGit(t, baseGit, "clone", filepath.Join(remotes, "widget.git"), work)
	workGit := proc.NewRunner(work)
	mustGit(t, workGit, "config", "user.email", "ci@example.com")
	mustGit(t, workGit, "config", "user.name", "CI")
	mustGit(t, workGit, "config", "commit.gpgsign", "false")
	mustGit(t, workGit, "checkout", "-b", "feature")
	commitFile(t, workGit, work, "driver.c", "static int probe;\n", "add driver")
	commitFile(t, workGit, work, "driver.h", "extern int probe;\n", "add header")

	cfg := config.Default()
	cfg.MainlineBranch = "main"
	cfg.URLTemplate = filepath.Join(base, "remotes") + "/%s/%s.git"
	cfg.Checker = "true"
	cfg.CheckerArgs = nil

	return &fixture{
		base:     base,
		work:     work,
		workGit:  workGit,
		cfg:      cfg,
		target:   models.RepoTarget{Namespace: "linux-bsp", Name: "widget"},
		ancestor: ancestor,
	}
}

func (f *fixture) run(t *testing.T) (*Result, error) {
	t.Helper()
	return Run(context.Background(), f.cfg, proc.NewRunner(f.work), f.target, nil)
}

func TestGate_BranchAheadCheckerPasses(t *testing.T) {
	f := newFixture(t)
	before := listRemotes(t, f.workGit)

	res, err := f.run(t)
	require.NoError(t, err)
	assert.True(t, res.Verdict.Passed())
	assert.Equal(t, f.ancestor, res.Ancestor)
	assert.Equal(t, 2, res.Commits)

	// The remote set is exactly what it was before the run.
	assert.Equal(t, before, listRemotes(t, f.workGit))
}

func TestGate_CheckerRejects(t *testing.T) {
	f := newFixture(t)
	f.cfg.Checker = "false"

	res, err := f.run(t)
	require.NoError(t, err)
	assert.False(t, res.Verdict.Passed())
	assert.Equal(t, 1, res.Verdict.ExitCode)
	assert.Equal(t, []string{"origin"}, listRemotes(t, f.workGit))
}

func TestGate_CheckerReceivesRange(t *testing.T) {
	f := newFixture(t)

	argsFile := filepath.Join(f.base, "checker-args")
	script := filepath.Join(f.base, "checker.sh")
	content := "#!/bin/sh\necho \"$@\" > " + argsFile + "\n"
	require.NoError(t, os.WriteFile(script, []byte(content), 0755))
	f.cfg.Checker = script
	f.cfg.CheckerArgs = []string{"-g"}

	res, err := f.run(t)
	require.NoError(t, err)
	require.True(t, res.Verdict.Passed())

	head := mustGit(t, f.workGit, "rev-parse", "HEAD")
	assert.Equal(t, head, res.Head)

	data, err := os.ReadFile(argsFile)
	require.NoError(t, err)
	assert.Equal(t, "-g "+f.ancestor+".."+head, strings.TrimSpace(string(data)))
}

func TestGate_UnreachableRemote(t *testing.T) {
	f := newFixture(t)
	f.target.Name = "no-such-repo"

	_, err := f.run(t)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrFetch)
	assert.Equal(t, []string{"origin"}, listRemotes(t, f.workGit))
}

func TestGate_DisjointHistories(t *testing.T) {
	f := newFixture(t)

	// A mainline that shares no commits with the work tree.
	stranger := filepath.Join(f.base, "stranger")
	strangerGit := gitRepo(t, stranger)
	commitFile(t, strangerGit, stranger, "NOTES", "unrelated\n", "unrelated root")
	baseGit := proc.NewRunner(f.base)
	mustGit(t, baseGit, "clone", "--bare", stranger,
		filepath.Join(f.base, "remotes", "linux-bsp", "stranger.git"))
	f.target.Name = "stranger"

	_, err := f.run(t)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoMergeBase)
	assert.Equal(t, []string{"origin"}, listRemotes(t, f.workGit))
}

func TestGate_NothingBeyondMainline(t *testing.T) {
	f := newFixture(t)
	mustGit(t, f.workGit, "checkout", "main")
	f.cfg.Checker = "false" // would fail the run if it were invoked

	res, err := f.run(t)
	require.NoError(t, err)
	assert.True(t, res.Skipped)
	assert.True(t, res.Verdict.Passed())
	assert.Equal(t, 0, res.Commits)
	assert.Equal(t, []string{"origin"}, listRemotes(t, f.workGit))
}

func TestGate_RepeatedRunsAgree(t *testing.T) {
	f := newFixture(t)

	first, err := f.run(t)
	require.NoError(t, err)
	second, err := f.run(t)
	require.NoError(t, err)

	assert.Equal(t, first.Ancestor, second.Ancestor)
	assert.Equal(t, []string{"origin"}, listRemotes(t, f.workGit))
}
