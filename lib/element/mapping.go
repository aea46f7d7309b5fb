package element

import (
	"bytes"
	"encoding/json"
	"slices"
)

// Mapping is the ordered key/value representation of an element handed to
// reporting and persistence layers.
type Mapping struct {
	keys   []string
	values map[string]any
}

func NewMapping() *Mapping {
	return &Mapping{values: map[string]any{}}
}

// Set assigns key, keeping its original position when it already exists.
func (m *Mapping) Set(key string, value any) {
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

func (m *Mapping) Get(key string) (any, bool) {
	v, ok := m.values[key]
	return v, ok
}

func (m *Mapping) Keys() []string {
	return slices.Clone(m.keys)
}

func (m *Mapping) Len() int {
	return len(m.keys)
}

func (m *Mapping) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(m.values[key])
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
