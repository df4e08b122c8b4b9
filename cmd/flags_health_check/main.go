// Command flags_health_check resets server configurable flags after
// repeated failed boots. Init runs it with no arguments on every boot.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/flagrescue/internal/cli"
)

func main() {
	cmd := cli.NewRootCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(cli.GetExitCode(err))
	}
}
