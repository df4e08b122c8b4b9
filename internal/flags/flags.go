// Package flags reads server-configurable experiment flags from the
// system property store.
//
// A flag lives at "persist.device_config.<category>.<flag>". Category and
// flag names are validated before any lookup; an invalid name yields the
// caller's default.
package flags

import (
	"log/slog"
	"strings"

	"github.com/roach88/flagrescue/internal/props"
)

const (
	// Prefix is the reserved namespace for server-configurable flags.
	Prefix = "persist.device_config."

	// AttemptedBootCountKey holds the number of boot attempts that have not
	// reached boot-completed. It shares the flag namespace.
	AttemptedBootCountKey = Prefix + "attempted_boot_count"
)

// PropertyName composes the property key for category and flag.
// It does not validate its inputs.
func PropertyName(category, flag string) string {
	return Prefix + category + "." + flag
}

// ValidSegment reports whether s may be used as a category or flag name.
// Allowed characters are ASCII letters, digits, '_', '.', '-', '@' and ':';
// a leading or trailing '.' is rejected, as is the empty string.
func ValidSegment(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !validChar(s[i]) {
			return false
		}
	}
	return !strings.HasPrefix(s, ".") && !strings.HasSuffix(s, ".")
}

func validChar(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	case c == '_', c == '.', c == '-', c == '@', c == ':':
		return true
	}
	return false
}

// Get returns the value of category/flag, or def when either name is
// invalid or the property is unset. A nil logger uses slog.Default().
func Get(store props.Store, logger *slog.Logger, category, flag, def string) string {
	if logger == nil {
		logger = slog.Default()
	}
	if !ValidSegment(category) {
		logger.Error("invalid category name", "category", category)
		return def
	}
	if !ValidSegment(flag) {
		logger.Error("invalid flag name", "flag", flag)
		return def
	}
	return store.Get(PropertyName(category, flag), def)
}
