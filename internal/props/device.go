package props

import (
	"bufio"
	"bytes"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
)

// CommandRunner executes an external command and returns its stdout.
type CommandRunner func(name string, args ...string) ([]byte, error)

// ExecRunner runs commands with os/exec.
func ExecRunner(name string, args ...string) ([]byte, error) {
	cmd := exec.Command(name, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w (stderr: %s)", name, strings.Join(args, " "), err, strings.TrimSpace(stderr.String()))
	}
	return out, nil
}

// Device is a Store backed by the Android getprop/setprop tools.
type Device struct {
	GetProp string // default "getprop"
	SetProp string // default "setprop"
	Run     CommandRunner
	Logger  *slog.Logger
}

// NewDevice creates a Device store using the given binaries.
// Empty names fall back to "getprop" and "setprop".
func NewDevice(getprop, setprop string, logger *slog.Logger) *Device {
	if getprop == "" {
		getprop = "getprop"
	}
	if setprop == "" {
		setprop = "setprop"
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Device{GetProp: getprop, SetProp: setprop, Run: ExecRunner, Logger: logger}
}

// Get reads key with getprop. A failed command is reported as absent.
func (d *Device) Get(key, def string) string {
	out, err := d.Run(d.GetProp, key)
	if err != nil {
		d.Logger.Debug("getprop failed", "key", key, "error", err)
		return def
	}
	v := strings.TrimRight(string(out), "\r\n")
	if v == "" {
		return def
	}
	return v
}

func (d *Device) Set(key, value string) error {
	if _, err := d.Run(d.SetProp, key, value); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

// ForEach lists every property via a bare getprop.
func (d *Device) ForEach(fn func(key, value string)) error {
	out, err := d.Run(d.GetProp)
	if err != nil {
		return fmt.Errorf("list properties: %w", err)
	}
	scanner := bufio.NewScanner(bytes.NewReader(out))
	for scanner.Scan() {
		key, value, ok := ParseListing(scanner.Text())
		if !ok {
			continue
		}
		fn(key, value)
	}
	return scanner.Err()
}

// ParseListing parses one line of getprop output: "[key]: [value]".
func ParseListing(line string) (key, value string, ok bool) {
	line = strings.TrimSpace(line)
	if !strings.HasPrefix(line, "[") || !strings.HasSuffix(line, "]") {
		return "", "", false
	}
	sep := strings.Index(line, "]: [")
	if sep < 0 {
		return "", "", false
	}
	key = line[1:sep]
	value = line[sep+len("]: [") : len(line)-1]
	if key == "" {
		return "", "", false
	}
	return key, value, true
}
