// Package harness runs boot scenarios against the flag recovery logic.
//
// A scenario seeds a property store, replays a sequence of boot-time steps
// (health check boots, boot-completed marks, manual resets) and checks the
// final property values. Traces and final state are deterministic, so
// results can be compared against golden files:
//
//	go test ./internal/harness -update
//
// Scenarios run against an in-memory store unless a store is supplied, in
// which case the same steps exercise the SQLite backend.
package harness
