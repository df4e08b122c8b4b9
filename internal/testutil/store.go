package testutil

import (
	"errors"
	"sync"

	"github.com/roach88/flagrescue/internal/props"
)

// ErrInjected is returned by RecordingStore writes to keys listed in FailKeys.
var ErrInjected = errors.New("injected store failure")

// Write is one recorded Set call.
type Write struct {
	Key   string
	Value string
}

// RecordingStore wraps a props.Memory and records every Set.
//
// Writes to keys in FailKeys return ErrInjected and leave the store
// unchanged. Setting FailList makes ForEach fail.
type RecordingStore struct {
	*props.Memory

	mu       sync.Mutex
	writes   []Write
	FailKeys map[string]bool
	FailList bool
}

// NewRecordingStore creates a RecordingStore seeded with initial.
func NewRecordingStore(initial map[string]string) *RecordingStore {
	return &RecordingStore{Memory: props.NewMemory(initial), FailKeys: map[string]bool{}}
}

func (s *RecordingStore) Set(key, value string) error {
	s.mu.Lock()
	s.writes = append(s.writes, Write{Key: key, Value: value})
	fail := s.FailKeys[key]
	s.mu.Unlock()
	if fail {
		return ErrInjected
	}
	return s.Memory.Set(key, value)
}

func (s *RecordingStore) ForEach(fn func(key, value string)) error {
	if s.FailList {
		return ErrInjected
	}
	return s.Memory.ForEach(fn)
}

// Writes returns the Set calls made so far, in order.
func (s *RecordingStore) Writes() []Write {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Write(nil), s.writes...)
}

// WritesTo returns the recorded values written to key.
func (s *RecordingStore) WritesTo(key string) []string {
	var out []string
	for _, w := range s.Writes() {
		if w.Key == key {
			out = append(out, w.Value)
		}
	}
	return out
}

var _ props.Store = (*RecordingStore)(nil)
