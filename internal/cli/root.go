// Package cli implements the patchgate command-line interface.
package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/patchgate/patchgate/internal/config"
	"github.com/patchgate/patchgate/internal/core"
	"github.com/patchgate/patchgate/internal/models"
	"github.com/patchgate/patchgate/internal/proc"
	"github.com/spf13/cobra"
)

// version is stamped at build time via -ldflags.
var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "patchgate [<namespace>] [<repository>]",
	Short: "Gate branch commits on the project style checker",
	Long: `Patchgate verifies that every commit on the current branch passes the
project style checker before it reaches review.

It registers a temporary remote for the configured mainline, fetches the
mainline branch through it, finds the merge base with HEAD, and runs the
checker over every commit in between. The temporary remote is removed
again on every exit path.

The namespace defaults to the configured one and the repository name to
the base name of the current directory. The exit status is the verdict:
0 when every commit passes, 1 otherwise.

Examples:
  patchgate                  Check against <namespace>/<current-dir>
  patchgate rd               Check against rd/<current-dir>
  patchgate rd linux-imx     Check against rd/linux-imx`,
	Args:    cobra.MaximumNArgs(2),
	Version: version,
	Run:     runGate,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func runGate(cmd *cobra.Command, args []string) {
	ctx := context.Background()

	wd, err := os.Getwd()
	if err != nil {
		exitError("%v", err)
	}

	cfg, err := config.Load(wd)
	if err != nil {
		exitError("%v", err)
	}

	target := targetFromArgs(cfg, args, wd)
	runner := proc.NewRunner(wd)

	res, err := core.Run(ctx, cfg, runner, target, func(line string) {
		fmt.Println(line)
	})

	yellow := color.New(color.FgYellow)
	if res != nil {
		for _, warning := range res.Warnings {
			yellow.Fprintf(os.Stderr, "warning: %s\n", warning)
		}
	}
	if err != nil {
		exitError("%v", err)
	}

	green := color.New(color.FgGreen)
	red := color.New(color.FgRed, color.Bold)

	if res.Skipped {
		fmt.Printf("No commits beyond %s; nothing to check.\n", shortID(res.Ancestor))
		return
	}

	if !res.Verdict.Passed() {
		red.Printf("FAIL: one or more commits failed %s (exit %d)\n", cfg.Checker, res.Verdict.ExitCode)
		os.Exit(1)
	}

	green.Printf("All %d commit(s) since %s passed %s\n", res.Commits, shortID(res.Ancestor), cfg.Checker)
}

// targetFromArgs builds the repository target from positional arguments,
// falling back to the configured namespace and the working directory name.
func targetFromArgs(cfg *config.Config, args []string, wd string) models.RepoTarget {
	target := models.RepoTarget{
		Namespace: cfg.Namespace,
		Name:      filepath.Base(wd),
	}
	if len(args) >= 1 {
		target.Namespace = args[0]
	}
	if len(args) >= 2 {
		target.Name = args[1]
	}
	return target
}

// exitError prints an error and exits
func exitError(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "error: "+format+"\n", args...)
	os.Exit(1)
}

// shortID returns first 8 characters of an ID
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
