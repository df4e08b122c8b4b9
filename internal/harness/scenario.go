package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

// Scenario defines a boot sequence and its expected end state.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Gated runs boot steps behind the remote health check switch.
	// Defaults to true.
	Gated *bool `yaml:"gated,omitempty"`

	// Threshold overrides the reset threshold. Zero means the default.
	Threshold int `yaml:"threshold,omitempty"`

	// Properties seeds the store before the first step.
	Properties map[string]string `yaml:"properties"`

	// Steps lists boot, mark_boot and reset steps in execution order.
	Steps []string `yaml:"steps"`

	// Expect maps property keys to their expected final value.
	// An empty string expects the property to be unset or cleared.
	Expect map[string]string `yaml:"expect"`
}

// IsGated reports whether boot steps consult the remote switch.
func (s *Scenario) IsGated() bool {
	return s.Gated == nil || *s.Gated
}

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // Reject unknown fields
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// LoadDir loads every *.yaml scenario in dir whose base name matches
// filter (a filepath.Match pattern; empty matches all), sorted by path.
func LoadDir(dir, filter string) ([]*Scenario, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		return nil, fmt.Errorf("scan scenarios: %w", err)
	}
	sort.Strings(paths)

	var scenarios []*Scenario
	for _, path := range paths {
		if filter != "" {
			name := filepath.Base(path)
			name = name[:len(name)-len(filepath.Ext(name))]
			ok, err := filepath.Match(filter, name)
			if err != nil {
				return nil, fmt.Errorf("invalid filter %q: %w", filter, err)
			}
			if !ok {
				continue
			}
		}
		s, err := LoadScenario(path)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		scenarios = append(scenarios, s)
	}
	return scenarios, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if s.Threshold < 0 {
		return fmt.Errorf("threshold must be non-negative")
	}

	if len(s.Steps) == 0 {
		return fmt.Errorf("steps list is required and must be non-empty")
	}

	for i, step := range s.Steps {
		switch step {
		case StepBoot, StepMarkBoot, StepReset:
		default:
			return fmt.Errorf("steps[%d]: unknown step %q", i, step)
		}
	}

	if len(s.Expect) == 0 {
		return fmt.Errorf("expect is required and must be non-empty")
	}

	return nil
}
