package cli

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"

	"github.com/roach88/flagrescue/internal/config"
	"github.com/roach88/flagrescue/internal/props"
	"github.com/roach88/flagrescue/internal/testutil"
)

const (
	countKey = "persist.device_config.attempted_boot_count"
	gateKey  = "persist.device_config.global_settings.native_flags_health_check_enabled"
	testRun  = "test-run"
)

// clearEnv isolates tests from FLAGRESCUE_* variables on the host.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{config.EnvConfig, config.EnvBackend, config.EnvDatabase, config.EnvGated} {
		t.Setenv(k, "")
	}
}

// runCLI executes the boot-time command with args against store (nil uses
// the configured backend) and returns stdout, stderr and the error.
func runCLI(t *testing.T, store props.Store, args ...string) (string, string, error) {
	t.Helper()
	opts := testOptions(store)
	return execute(t, NewRootCommandWithOptions(opts), args...)
}

// runCtl executes the flagsctl command the same way.
func runCtl(t *testing.T, store props.Store, args ...string) (string, string, error) {
	t.Helper()
	opts := testOptions(store)
	return execute(t, NewCtlCommandWithOptions(opts), args...)
}

func testOptions(store props.Store) *RootOptions {
	return &RootOptions{
		Store:  store,
		RunIDs: testutil.NewFixedRunIDGenerator(testRun),
	}
}

func execute(t *testing.T, cmd *cobra.Command, args ...string) (string, string, error) {
	t.Helper()
	clearEnv(t)

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}
