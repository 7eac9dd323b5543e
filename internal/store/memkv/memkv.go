// Package memkv is a map-backed key-value store. Nothing outlives the process.
package memkv

import "context"

// Store holds values in memory. The zero value is not usable; call New.
type Store struct {
	values map[string]string

	// SetErr, when non-nil, is returned by every Set call.
	SetErr error
	// GetErr, when non-nil, is returned by every Get call.
	GetErr error
}

// New returns an empty Store.
func New() *Store {
	return &Store{values: make(map[string]string)}
}

// Get returns the value under key.
func (s *Store) Get(_ context.Context, key string) (string, bool, error) {
	if s.GetErr != nil {
		return "", false, s.GetErr
	}
	v, ok := s.values[key]
	return v, ok, nil
}

// Set stores value under key.
func (s *Store) Set(_ context.Context, key, value string) error {
	if s.SetErr != nil {
		return s.SetErr
	}
	s.values[key] = value
	return nil
}

// Close is a no-op.
func (s *Store) Close() error { return nil }
