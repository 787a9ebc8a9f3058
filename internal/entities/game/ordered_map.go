package game

import (
	"bytes"
	"encoding/json"
)

// Pair is the wire framing of one OrderedMap entry
type Pair[V any] struct {
	Key   string `json:"key"`
	Value V      `json:"value"`
}

// OrderedMap is a string-keyed map that remembers insertion order.
// The zero value is empty and ready to use. It encodes to JSON as an array of
// key/value pairs so the order survives a round trip through the store.
type OrderedMap[V any] struct {
	keys   []string
	values map[string]V
}

// Get returns the value stored under key
func (m OrderedMap[V]) Get(key string) (V, bool) {
	v, ok := m.values[key]
	return v, ok
}

// Has reports whether key is present
func (m OrderedMap[V]) Has(key string) bool {
	_, ok := m.values[key]
	return ok
}

// Len returns the number of entries
func (m OrderedMap[V]) Len() int {
	return len(m.keys)
}

// Keys returns a copy of the keys in insertion order
func (m OrderedMap[V]) Keys() []string {
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// Values returns the values in insertion order
func (m OrderedMap[V]) Values() []V {
	out := make([]V, 0, len(m.keys))
	for _, k := range m.keys {
		out = append(out, m.values[k])
	}
	return out
}

// Pairs returns the entries in insertion order
func (m OrderedMap[V]) Pairs() []Pair[V] {
	out := make([]Pair[V], 0, len(m.keys))
	for _, k := range m.keys {
		out = append(out, Pair[V]{Key: k, Value: m.values[k]})
	}
	return out
}

// Set inserts or replaces the value under key. Replacing keeps the original position.
func (m *OrderedMap[V]) Set(key string, value V) {
	if m.values == nil {
		m.values = make(map[string]V)
	}
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

// Delete removes key, reporting whether it was present
func (m *OrderedMap[V]) Delete(key string) bool {
	if _, ok := m.values[key]; !ok {
		return false
	}
	delete(m.values, key)
	for i, k := range m.keys {
		if k == key {
			m.keys = append(m.keys[:i], m.keys[i+1:]...)
			break
		}
	}
	if len(m.keys) == 0 {
		m.Clear()
	}
	return true
}

// Clear removes every entry
func (m *OrderedMap[V]) Clear() {
	m.keys = nil
	m.values = nil
}

// MarshalJSON encodes the map as an ordered array of pairs
func (m OrderedMap[V]) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.Pairs())
}

// UnmarshalJSON decodes an array of pairs, keeping their order
func (m *OrderedMap[V]) UnmarshalJSON(data []byte) error {
	m.Clear()
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}

	var pairs []Pair[V]
	if err := json.Unmarshal(data, &pairs); err != nil {
		return err
	}
	for _, p := range pairs {
		m.Set(p.Key, p.Value)
	}
	return nil
}
