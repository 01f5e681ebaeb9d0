package jsonb

import (
	"iter"

	"github.com/speakeasy-api/openapi/sequencedmap"
)

// Map is a string-keyed mapping that preserves insertion order.
// The zero value is not usable; create maps with [NewMap] or [Builder.Map].
type Map struct {
	m *sequencedmap.Map[string, any]
}

// NewMap returns an empty Map.
func NewMap() *Map {
	return &Map{m: sequencedmap.New[string, any]()}
}

// Put sets key to v. A new key is appended; an existing key keeps its
// position.
func (m *Map) Put(key string, v any) {
	m.m.Set(key, v)
}

// Get returns the value stored under key.
func (m *Map) Get(key string) (any, bool) {
	return m.m.Get(key)
}

// Has reports whether key is present.
func (m *Map) Has(key string) bool {
	_, ok := m.m.Get(key)
	return ok
}

// Len returns the number of keys.
func (m *Map) Len() int { return m.m.Len() }

// All iterates over the entries in insertion order.
func (m *Map) All() iter.Seq2[string, any] {
	return m.m.All()
}

// Keys returns the keys in insertion order.
func (m *Map) Keys() []string {
	keys := make([]string, 0, m.Len())
	for k := range m.m.All() {
		keys = append(keys, k)
	}
	return keys
}

// MarshalJSON renders m compactly, preserving key order.
func (m *Map) MarshalJSON() ([]byte, error) {
	if m == nil {
		return []byte("null"), nil
	}
	return m.m.MarshalJSON()
}
