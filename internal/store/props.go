package store

import (
	"context"

	"github.com/roach88/flagrescue/internal/props"
)

var _ props.Store = (*Store)(nil)

// Get implements props.Store. Read errors resolve to def.
func (s *Store) Get(key, def string) string {
	v, found, err := s.Read(context.Background(), key)
	if err != nil || !found || v == "" {
		return def
	}
	return v
}

// Set implements props.Store.
func (s *Store) Set(key, value string) error {
	return s.Write(context.Background(), key, value)
}

// ForEach implements props.Store. Rows are fully read before fn runs, so fn
// may write to the store.
func (s *Store) ForEach(fn func(key, value string)) error {
	all, err := s.List(context.Background())
	if err != nil {
		return err
	}
	for _, p := range all {
		fn(p.Key, p.Value)
	}
	return nil
}
