package recovery

import "github.com/roach88/flagrescue/internal/flags"

// Remote switch that can disable the health check without a code change.
const (
	GateCategory = "global_settings"
	GateFlag     = "native_flags_health_check_enabled"
	GateEnabled  = "1"
)

// CheckResult reports one boot-time health check.
type CheckResult struct {
	Enabled bool     `json:"enabled"`
	Outcome *Outcome `json:"outcome,omitempty"`
}

// HealthCheck runs the boot-time check. When gated, the remote switch is read
// first and any value other than GateEnabled skips the check for this boot;
// an unset switch counts as enabled.
func (t *Tracker) HealthCheck(gated bool) CheckResult {
	if gated {
		v := flags.Get(t.store, t.logger, GateCategory, GateFlag, GateEnabled)
		if v != GateEnabled {
			t.logger.Info("server configurable flags health check is disabled", "switch", v)
			return CheckResult{Enabled: false}
		}
	}

	t.logger.Info("starting server configurable flags health check", "gated", gated)
	out := t.ResetOrTally()
	return CheckResult{Enabled: true, Outcome: &out}
}
