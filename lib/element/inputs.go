package element

import (
	"maps"
	"net/url"
	"slices"
)

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

type Pair struct {
	Name  string
	Value string
}

// Inputs is an insertion ordered name -> value mapping. The zero value and
// a nil *Inputs are both empty and ready to read.
type Inputs struct {
	names  []string
	values map[string]string
}

func NewInputs(pairs ...Pair) *Inputs {
	in := &Inputs{}
	for _, p := range pairs {
		in.Set(p.Name, p.Value)
	}
	return in
}

// InputsFromMap builds inputs from m ordered by name.
func InputsFromMap(m map[string]string) *Inputs {
	in := &Inputs{}
	for _, name := range sortedKeys(m) {
		in.Set(name, m[name])
	}
	return in
}

// InputsFromValues keeps the first value of every name, ordered by name.
func InputsFromValues(values url.Values) *Inputs {
	in := &Inputs{}
	for _, name := range sortedKeys(values) {
		in.Set(name, values.Get(name))
	}
	return in
}

func (in *Inputs) Len() int {
	if in == nil {
		return 0
	}
	return len(in.names)
}

func (in *Inputs) Get(name string) (string, bool) {
	if in == nil {
		return "", false
	}
	v, ok := in.values[name]
	return v, ok
}

// Set updates the value of name, a new name is appended at the end.
func (in *Inputs) Set(name, value string) {
	if in.values == nil {
		in.values = map[string]string{}
	}
	if _, ok := in.values[name]; !ok {
		in.names = append(in.names, name)
	}
	in.values[name] = value
}

func (in *Inputs) Delete(name string) {
	if in == nil {
		return
	}
	if _, ok := in.values[name]; !ok {
		return
	}
	delete(in.values, name)
	in.names = slices.DeleteFunc(in.names, func(n string) bool {
		return n == name
	})
}

func (in *Inputs) Names() []string {
	if in == nil {
		return nil
	}
	return slices.Clone(in.names)
}

func (in *Inputs) Pairs() []Pair {
	if in == nil {
		return nil
	}
	out := make([]Pair, len(in.names))
	for i, name := range in.names {
		out[i] = Pair{Name: name, Value: in.values[name]}
	}
	return out
}

// Each calls fn in insertion order until fn returns false.
func (in *Inputs) Each(fn func(name, value string) bool) {
	if in == nil {
		return
	}
	for _, name := range in.names {
		if !fn(name, in.values[name]) {
			return
		}
	}
}

func (in *Inputs) Map() map[string]string {
	out := make(map[string]string, in.Len())
	in.Each(func(name, value string) bool {
		out[name] = value
		return true
	})
	return out
}

func (in *Inputs) Values() url.Values {
	out := make(url.Values, in.Len())
	in.Each(func(name, value string) bool {
		out.Set(name, value)
		return true
	})
	return out
}

// Clone returns an independent copy, cloning nil yields an empty mapping.
func (in *Inputs) Clone() *Inputs {
	if in == nil {
		return &Inputs{}
	}
	return &Inputs{
		names:  slices.Clone(in.names),
		values: maps.Clone(in.values),
	}
}

// Equal reports whether both mappings hold the same pairs, order is ignored.
func (in *Inputs) Equal(other *Inputs) bool {
	if in.Len() != other.Len() {
		return false
	}
	equal := true
	in.Each(func(name, value string) bool {
		v, ok := other.Get(name)
		equal = ok && v == value
		return equal
	})
	return equal
}
