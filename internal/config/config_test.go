package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{EnvConfig, EnvBackend, EnvDatabase, EnvGated} {
		t.Setenv(k, "")
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, BackendDevice, cfg.Backend)
	assert.True(t, cfg.Gated)
	assert.Equal(t, 4, cfg.Threshold)
	assert.Equal(t, "getprop", cfg.GetProp)
	assert.Equal(t, "setprop", cfg.SetProp)
	require.NoError(t, cfg.Validate())
}

func TestLoad_NoFile(t *testing.T) {
	clearEnv(t)
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_File(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
backend: sqlite
database: /tmp/props.db
gated: false
threshold: 2
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, BackendSQLite, cfg.Backend)
	assert.Equal(t, "/tmp/props.db", cfg.Database)
	assert.False(t, cfg.Gated)
	assert.Equal(t, 2, cfg.Threshold)
	assert.Equal(t, "getprop", cfg.GetProp, "unset fields keep defaults")
}

func TestLoad_EmptyFile(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(writeConfig(t, ""))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_PathFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvConfig, writeConfig(t, "backend: memory\n"))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, BackendMemory, cfg.Backend)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "backend: memory\ngated: true\n")
	t.Setenv(EnvBackend, "sqlite")
	t.Setenv(EnvDatabase, "/data/props.db")
	t.Setenv(EnvGated, "false")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, BackendSQLite, cfg.Backend)
	assert.Equal(t, "/data/props.db", cfg.Database)
	assert.False(t, cfg.Gated)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		env     map[string]string
		wantErr string
	}{
		{"unknown field", "backnd: device\n", nil, "field backnd not found"},
		{"bad backend", "backend: flash\n", nil, "invalid config"},
		{"zero threshold", "threshold: 0\n", nil, "invalid config"},
		{"sqlite without database", "backend: sqlite\n", nil, "invalid config"},
		{"empty getprop", "getprop: \"\"\n", nil, "invalid config"},
		{"bad gated env", "", map[string]string{EnvGated: "maybe"}, EnvGated},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load(writeConfig(t, tt.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	clearEnv(t)
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config")
}
