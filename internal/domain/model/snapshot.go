// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package model

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Snapshot is a point-in-time copy of a directory listing keyed by name.
// Keys keep insertion order, in memory and in JSON.
type Snapshot[V any] struct {
	entries *orderedmap.OrderedMap[string, V]
}

// NewSnapshot creates an empty snapshot
func NewSnapshot[V any]() *Snapshot[V] {
	return &Snapshot[V]{
		entries: orderedmap.New[string, V](),
	}
}

func (s *Snapshot[V]) init() {
	if s.entries == nil {
		s.entries = orderedmap.New[string, V]()
	}
}

// Set adds or replaces the value stored under key
func (s *Snapshot[V]) Set(key string, value V) {
	s.init()
	s.entries.Set(key, value)
}

// Get returns the value stored under key
func (s *Snapshot[V]) Get(key string) (V, bool) {
	if s == nil || s.entries == nil {
		var zero V
		return zero, false
	}
	return s.entries.Get(key)
}

// Len returns the number of entries
func (s *Snapshot[V]) Len() int {
	if s == nil || s.entries == nil {
		return 0
	}
	return s.entries.Len()
}

// Keys returns the keys in insertion order
func (s *Snapshot[V]) Keys() []string {
	keys := make([]string, 0, s.Len())
	if s.Len() == 0 {
		return keys
	}
	for pair := s.entries.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

// Values returns the values in insertion order
func (s *Snapshot[V]) Values() []V {
	values := make([]V, 0, s.Len())
	if s.Len() == 0 {
		return values
	}
	for pair := s.entries.Oldest(); pair != nil; pair = pair.Next() {
		values = append(values, pair.Value)
	}
	return values
}

// MarshalJSON writes the snapshot as a JSON object in insertion order
func (s *Snapshot[V]) MarshalJSON() ([]byte, error) {
	if s.Len() == 0 {
		return []byte("{}"), nil
	}
	return s.entries.MarshalJSON()
}

// UnmarshalJSON reads a JSON object keeping the document key order
func (s *Snapshot[V]) UnmarshalJSON(data []byte) error {
	s.entries = orderedmap.New[string, V]()
	return s.entries.UnmarshalJSON(data)
}
