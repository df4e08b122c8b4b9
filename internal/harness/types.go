package harness

// Step names accepted in scenario files.
const (
	StepBoot     = "boot"      // boot-time health check
	StepMarkBoot = "mark_boot" // sys.boot_completed trigger
	StepReset    = "reset"     // unconditional flag reset
)

// TraceEvent records one executed step.
type TraceEvent struct {
	Seq     int    `json:"seq"`
	Step    string `json:"step"`
	Count   int    `json:"count"`             // attempted boot count before the step
	Action  string `json:"action,omitempty"`  // tally or reset, boot steps only
	Cleared int    `json:"cleared,omitempty"` // properties cleared by the step
	Skipped bool   `json:"skipped,omitempty"` // boot step disabled by the remote switch
}

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass is true when every expected property matched.
	Pass bool `json:"pass"`

	Trace []TraceEvent `json:"trace"`

	// Errors describes each mismatched expectation.
	Errors []string `json:"errors,omitempty"`

	// Final holds every property in the store after the last step,
	// including cleared (empty) ones.
	Final map[string]string `json:"final"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Trace:  []TraceEvent{},
		Errors: []string{},
		Final:  map[string]string{},
	}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}
