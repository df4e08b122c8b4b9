package recovery

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/roach88/flagrescue/internal/flags"
	"github.com/roach88/flagrescue/internal/props"
)

// DefaultThreshold is the attempted boot count at which flags are reset.
const DefaultThreshold = 4

// Action is the decision taken by ResetOrTally.
type Action string

const (
	ActionTally Action = "tally"
	ActionReset Action = "reset"
)

// Outcome reports what ResetOrTally did.
type Outcome struct {
	Action  Action `json:"action"`
	Count   int    `json:"count"`             // counter value read before acting
	Cleared int    `json:"cleared,omitempty"` // properties cleared by a reset
}

// Status is a read-only view of the recovery state.
type Status struct {
	Count     int  `json:"count"`
	Threshold int  `json:"threshold"`
	WillReset bool `json:"will_reset"`
	Flags     int  `json:"flags"` // non-empty flags under the prefix, excluding the counter
}

// Tracker counts failed boot attempts against a property store.
type Tracker struct {
	store     props.Store
	threshold int
	logger    *slog.Logger
}

// New creates a Tracker. threshold < 1 selects DefaultThreshold and a nil
// logger selects slog.Default().
func New(store props.Store, threshold int, logger *slog.Logger) *Tracker {
	if threshold < 1 {
		threshold = DefaultThreshold
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Tracker{store: store, threshold: threshold, logger: logger}
}

// Threshold returns the configured reset threshold.
func (t *Tracker) Threshold() int {
	return t.threshold
}

// ResetOrTally increments the attempted boot count, or resets all flags once
// the count has reached the threshold. Store write failures are logged and
// absorbed.
func (t *Tracker) ResetOrTally() Outcome {
	count := t.count()
	if count < t.threshold {
		t.logger.Info("attempted boot count is under threshold, skipping reset",
			"count", count, "threshold", t.threshold)
		if err := t.store.Set(flags.AttemptedBootCountKey, strconv.Itoa(count+1)); err != nil {
			t.logger.Error("failed to record boot attempt", "error", err)
		}
		return Outcome{Action: ActionTally, Count: count}
	}

	t.logger.Info("attempted boot count reaches threshold, resetting flags",
		"count", count, "threshold", t.threshold)
	cleared, err := t.ResetAllFlags()
	if err != nil {
		t.logger.Error("flag reset incomplete", "error", err, "cleared", cleared)
	}
	return Outcome{Action: ActionReset, Count: count, Cleared: cleared}
}

// ResetAllFlags clears every non-empty property under flags.Prefix and
// returns how many were cleared. Properties outside the prefix are never
// written. Keys are collected before writing so backends whose iteration
// holds a connection can still accept the writes.
func (t *Tracker) ResetAllFlags() (int, error) {
	var keys []string
	err := t.store.ForEach(func(key, value string) {
		if strings.HasPrefix(key, flags.Prefix) && value != "" {
			keys = append(keys, key)
		}
	})
	if err != nil {
		return 0, fmt.Errorf("enumerate properties: %w", err)
	}

	cleared := 0
	var firstErr error
	for _, key := range keys {
		if err := t.store.Set(key, ""); err != nil {
			t.logger.Error("failed to clear flag", "key", key, "error", err)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		t.logger.Debug("cleared flag", "key", key)
		cleared++
	}
	return cleared, firstErr
}

// MarkBoot clears the attempted boot count. Init calls it once
// sys.boot_completed is set.
func (t *Tracker) MarkBoot() error {
	if err := t.store.Set(flags.AttemptedBootCountKey, ""); err != nil {
		return fmt.Errorf("clear attempted boot count: %w", err)
	}
	t.logger.Info("boot completed, attempted boot count cleared")
	return nil
}

// Status reports the current count and the number of set flags.
func (t *Tracker) Status() (Status, error) {
	st := Status{Count: t.count(), Threshold: t.threshold}
	st.WillReset = st.Count >= t.threshold
	err := t.store.ForEach(func(key, value string) {
		if key != flags.AttemptedBootCountKey && strings.HasPrefix(key, flags.Prefix) && value != "" {
			st.Flags++
		}
	})
	if err != nil {
		return st, fmt.Errorf("enumerate properties: %w", err)
	}
	return st, nil
}

// count reads the attempted boot count; absent, unparsable and negative
// values read as zero. A negative count is therefore replaced by "1" on the
// next tally instead of being incremented toward zero.
func (t *Tracker) count() int {
	raw := strings.TrimSpace(t.store.Get(flags.AttemptedBootCountKey, "0"))
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		if raw != "0" {
			t.logger.Debug("ignoring malformed attempted boot count", "value", raw)
		}
		return 0
	}
	return n
}
