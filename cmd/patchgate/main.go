// Command patchgate gates branch commits on the project style checker.
package main

import (
	"os"

	"github.com/patchgate/patchgate/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
