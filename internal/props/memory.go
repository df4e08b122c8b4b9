package props

import (
	"sort"
	"sync"
)

// Memory is an in-memory Store.
//
// ForEach visits keys in sorted order so test output is deterministic.
// Thread-safety: safe for concurrent use; ForEach snapshots before visiting
// so fn may call Set.
type Memory struct {
	mu    sync.Mutex
	props map[string]string
}

// NewMemory creates a Memory store seeded with initial (may be nil).
func NewMemory(initial map[string]string) *Memory {
	m := &Memory{props: make(map[string]string, len(initial))}
	for k, v := range initial {
		m.props[k] = v
	}
	return m
}

func (m *Memory) Get(key, def string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if v, ok := m.props[key]; ok && v != "" {
		return v
	}
	return def
}

func (m *Memory) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.props[key] = value
	return nil
}

func (m *Memory) ForEach(fn func(key, value string)) error {
	snapshot := m.Snapshot()
	keys := make([]string, 0, len(snapshot))
	for k := range snapshot {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fn(k, snapshot[k])
	}
	return nil
}

// Snapshot returns a copy of every stored property.
func (m *Memory) Snapshot() map[string]string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]string, len(m.props))
	for k, v := range m.props {
		out[k] = v
	}
	return out
}
