// Package recovery implements flag disaster recovery for boot.
//
// Each boot, init runs the health check before boot completes. The check
// reads persist.device_config.attempted_boot_count:
//   - below the threshold, the count is incremented and boot continues
//   - at or above the threshold, every non-empty property under
//     persist.device_config. is cleared, reverting all server-configurable
//     flags to their built-in defaults
//
// When sys.boot_completed becomes 1, init calls MarkBoot, which clears the
// count. A device that keeps failing to finish booting therefore reaches
// the threshold after a few attempts and boots with stock flag values.
//
// The count itself lives under the flag prefix, so a reset clears it too.
package recovery
