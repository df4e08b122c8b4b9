package props

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRunner records invocations and replies from a canned table.
type fakeRunner struct {
	calls   [][]string
	replies map[string]string
	fail    bool
}

func (f *fakeRunner) run(name string, args ...string) ([]byte, error) {
	f.calls = append(f.calls, append([]string{name}, args...))
	if f.fail {
		return nil, errors.New("exit status 1")
	}
	return []byte(f.replies[strings.Join(append([]string{name}, args...), " ")]), nil
}

func newTestDevice(r *fakeRunner) *Device {
	d := NewDevice("", "", nil)
	d.Run = r.run
	return d
}

func TestDevice_Get(t *testing.T) {
	r := &fakeRunner{replies: map[string]string{
		"getprop persist.device_config.a.b": "hello\n",
	}}
	d := newTestDevice(r)

	assert.Equal(t, "hello", d.Get("persist.device_config.a.b", "def"))
	assert.Equal(t, "def", d.Get("persist.device_config.a.c", "def"))
}

func TestDevice_GetCommandFailureReturnsDefault(t *testing.T) {
	d := newTestDevice(&fakeRunner{fail: true})
	assert.Equal(t, "def", d.Get("any", "def"))
}

func TestDevice_Set(t *testing.T) {
	r := &fakeRunner{}
	d := newTestDevice(r)

	require.NoError(t, d.Set("persist.device_config.a.b", ""))
	require.Len(t, r.calls, 1)
	assert.Equal(t, []string{"setprop", "persist.device_config.a.b", ""}, r.calls[0])
}

func TestDevice_SetFailure(t *testing.T) {
	d := newTestDevice(&fakeRunner{fail: true})

	err := d.Set("k", "v")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "set k")
}

func TestDevice_ForEach(t *testing.T) {
	r := &fakeRunner{replies: map[string]string{
		"getprop": "[persist.device_config.a.b]: [1]\n" +
			"[sys.boot_completed]: [1]\n" +
			"garbage line\n" +
			"[ro.empty]: []\n",
	}}
	d := newTestDevice(r)

	got := map[string]string{}
	require.NoError(t, d.ForEach(func(key, value string) { got[key] = value }))
	assert.Equal(t, map[string]string{
		"persist.device_config.a.b": "1",
		"sys.boot_completed":        "1",
		"ro.empty":                  "",
	}, got)
}

func TestParseListing(t *testing.T) {
	tests := []struct {
		line  string
		key   string
		value string
		ok    bool
	}{
		{"[a.b]: [c]", "a.b", "c", true},
		{"  [a]: [x]: [y]  ", "a", "x]: [y", true},
		{"[a]: []", "a", "", true},
		{"[]: [v]", "", "", false},
		{"a: b", "", "", false},
		{"", "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			key, value, ok := ParseListing(tt.line)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.key, key)
			assert.Equal(t, tt.value, value)
		})
	}
}
