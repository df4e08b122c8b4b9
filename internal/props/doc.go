// Package props defines the system property store capability used by the
// boot health check and the flag accessor.
//
// The store is a process-external key/value map (Android system properties).
// Keys are case-sensitive; an empty value means "unset" and reads of an unset
// key return the caller's default. Implementations:
//   - Memory: in-process map, used by tests and dry runs
//   - Device: shells out to getprop/setprop on an Android device
//
// The SQLite-backed store lives in internal/store.
package props
