package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/flagrescue/internal/recovery"
)

// HealthCheckReport is the output of a boot-time health check.
type HealthCheckReport struct {
	RunID string `json:"run_id"`
	recovery.CheckResult
}

func (r HealthCheckReport) String() string {
	switch {
	case !r.Enabled:
		return "health check disabled"
	case r.Outcome.Action == recovery.ActionReset:
		return fmt.Sprintf("attempted boot count %d reached threshold: cleared %d properties", r.Outcome.Count, r.Outcome.Cleared)
	default:
		return fmt.Sprintf("attempted boot count %d -> %d", r.Outcome.Count, r.Outcome.Count+1)
	}
}

// runHealthCheck is the argument-free boot entry point. Store problems are
// absorbed by the tracker; only setup failures produce an error.
func runHealthCheck(opts *RootOptions, cmd *cobra.Command) error {
	s, err := openSession(opts, cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	res := s.tracker.HealthCheck(s.cfg.Gated)
	return s.out.Success(HealthCheckReport{RunID: s.runID, CheckResult: res})
}
