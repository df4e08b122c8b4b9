// Package config loads flag health check configuration.
//
// Configuration is resolved from (highest to lowest priority):
//  1. Command-line flags (applied by the caller)
//  2. Environment variables (FLAGRESCUE_*)
//  3. YAML config file (--config or FLAGRESCUE_CONFIG)
//  4. Defaults
//
// The merged result is checked against an embedded CUE schema.
package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"gopkg.in/yaml.v3"

	"github.com/roach88/flagrescue/internal/recovery"
)

//go:embed schema.cue
var schemaCUE string

// Backends.
const (
	BackendDevice = "device"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Environment variables.
const (
	EnvConfig   = "FLAGRESCUE_CONFIG"
	EnvBackend  = "FLAGRESCUE_BACKEND"
	EnvDatabase = "FLAGRESCUE_DATABASE"
	EnvGated    = "FLAGRESCUE_GATED"
)

// Config holds health check configuration.
type Config struct {
	// Backend selects the property store: device, sqlite or memory.
	Backend string `yaml:"backend" json:"backend"`

	// Database is the SQLite file path (sqlite backend only).
	Database string `yaml:"database" json:"database,omitempty"`

	// Gated makes the health check consult the remote
	// global_settings/native_flags_health_check_enabled switch first.
	Gated bool `yaml:"gated" json:"gated"`

	// Threshold is the attempted boot count that triggers a flag reset.
	Threshold int `yaml:"threshold" json:"threshold"`

	// GetProp and SetProp are the device backend tools.
	GetProp string `yaml:"getprop" json:"getprop"`
	SetProp string `yaml:"setprop" json:"setprop"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Backend:   BackendDevice,
		Gated:     true,
		Threshold: recovery.DefaultThreshold,
		GetProp:   "getprop",
		SetProp:   "setprop",
	}
}

// Load builds a Config from defaults, the YAML file at path and the
// environment. An empty path falls back to $FLAGRESCUE_CONFIG; if that is
// also empty no file is read.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv(EnvConfig)
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := decodeInto(cfg, data); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// decodeInto overlays YAML onto cfg. Unknown fields are rejected.
func decodeInto(cfg *Config, data []byte) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv(EnvBackend); v != "" {
		cfg.Backend = v
	}
	if v := os.Getenv(EnvDatabase); v != "" {
		cfg.Database = v
	}
	if v := os.Getenv(EnvGated); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvGated, v, err)
		}
		cfg.Gated = b
	}
	return nil
}

// Validate checks cfg against the embedded CUE schema.
func (c *Config) Validate() error {
	ctx := cuecontext.New()
	schema := ctx.CompileString(schemaCUE).LookupPath(cue.ParsePath("#Config"))
	if err := schema.Err(); err != nil {
		return fmt.Errorf("compile config schema: %w", err)
	}

	v := schema.Unify(ctx.Encode(c))
	if err := v.Validate(cue.Concrete(true)); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
