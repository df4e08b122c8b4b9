package harness

import (
	"fmt"
	"io"
	"log/slog"
	"sort"

	"github.com/roach88/flagrescue/internal/props"
	"github.com/roach88/flagrescue/internal/recovery"
)

// Run executes a scenario against a fresh in-memory store.
func Run(scenario *Scenario) (*Result, error) {
	return RunWith(scenario, props.NewMemory(nil), nil)
}

// RunWith executes a scenario against store, which should be empty.
// A nil logger discards log output.
func RunWith(scenario *Scenario, store props.Store, logger *slog.Logger) (*Result, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	keys := make([]string, 0, len(scenario.Properties))
	for k := range scenario.Properties {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := store.Set(k, scenario.Properties[k]); err != nil {
			return nil, fmt.Errorf("seed %s: %w", k, err)
		}
	}

	tracker := recovery.New(store, scenario.Threshold, logger)
	result := NewResult()

	for i, step := range scenario.Steps {
		st, err := tracker.Status()
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", i+1, err)
		}
		event := TraceEvent{Seq: i + 1, Step: step, Count: st.Count}

		switch step {
		case StepBoot:
			check := tracker.HealthCheck(scenario.IsGated())
			if !check.Enabled {
				event.Skipped = true
				break
			}
			event.Action = string(check.Outcome.Action)
			event.Cleared = check.Outcome.Cleared
		case StepMarkBoot:
			if err := tracker.MarkBoot(); err != nil {
				return nil, fmt.Errorf("step %d: %w", i+1, err)
			}
		case StepReset:
			cleared, err := tracker.ResetAllFlags()
			if err != nil {
				return nil, fmt.Errorf("step %d: %w", i+1, err)
			}
			event.Cleared = cleared
		default:
			return nil, fmt.Errorf("step %d: unknown step %q", i+1, step)
		}

		result.Trace = append(result.Trace, event)
	}

	if err := store.ForEach(func(key, value string) {
		result.Final[key] = value
	}); err != nil {
		return nil, fmt.Errorf("snapshot final state: %w", err)
	}

	checkExpectations(scenario, store, result)
	return result, nil
}

// checkExpectations compares expected values against the store, in key
// order so error lists are stable.
func checkExpectations(scenario *Scenario, store props.Store, result *Result) {
	keys := make([]string, 0, len(scenario.Expect))
	for k := range scenario.Expect {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		want := scenario.Expect[k]
		got := store.Get(k, "")
		if got != want {
			result.AddError(fmt.Sprintf("%s: expected %q, got %q", k, want, got))
		}
	}
}
