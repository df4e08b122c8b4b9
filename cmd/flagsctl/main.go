// Command flagsctl inspects and maintains the properties used by
// flags_health_check. Init runs "flagsctl mark-boot" once boot completes.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/flagrescue/internal/cli"
)

func main() {
	cmd := cli.NewCtlCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(cli.GetExitCode(err))
	}
}
