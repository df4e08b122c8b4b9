// Package store provides a SQLite-backed durable property store.
//
// It implements props.Store for hosts without an Android property service:
// emulators, CI, and the boot scenario harness. Semantics match the device
// store:
//   - keys are case-sensitive and compared with BINARY collation
//   - an empty value means unset; Get returns the caller's default
//   - ForEach iterates in key order
//
// # Database Configuration
//
//   - WAL mode: readers do not block the boot-time writer
//   - synchronous=NORMAL: balance durability/performance
//   - busy_timeout=5000: wait for locks up to 5 seconds
//
// Schema changes are tracked with PRAGMA user_version.
package store
