package zendesk

import (
	"maps"
	"slices"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Args holds the arguments of a single API call. Keys keep their insertion
// order, which fixes both the query string order of GET requests and the
// field order of JSON bodies.
//
// A nil *Args is a valid empty argument set for every read method.
type Args struct {
	pairs *orderedmap.OrderedMap[string, interface{}]
}

// NewArgs creates an empty argument set.
func NewArgs() *Args {
	return &Args{pairs: orderedmap.New[string, interface{}]()}
}

// ArgsFromMap creates an argument set from m with keys in lexical order.
func ArgsFromMap(m map[string]interface{}) *Args {
	args := NewArgs()
	for _, k := range slices.Sorted(maps.Keys(m)) {
		args.Set(k, m[k])
	}

	return args
}

// Set adds or replaces a value. Replacing keeps the original position.
func (a *Args) Set(key string, value interface{}) *Args {
	if a.pairs == nil {
		a.pairs = orderedmap.New[string, interface{}]()
	}

	a.pairs.Set(key, value)

	return a
}

// SetIf sets key only when cond is true.
func (a *Args) SetIf(cond bool, key string, value interface{}) *Args {
	if cond {
		a.Set(key, value)
	}

	return a
}

// Get returns the value for key.
func (a *Args) Get(key string) (interface{}, bool) {
	if a == nil || a.pairs == nil {
		return nil, false
	}

	return a.pairs.Get(key)
}

// Has reports whether key is present.
func (a *Args) Has(key string) bool {
	_, ok := a.Get(key)

	return ok
}

// Delete removes key.
func (a *Args) Delete(key string) *Args {
	if a != nil && a.pairs != nil {
		a.pairs.Delete(key)
	}

	return a
}

// Len returns the number of arguments.
func (a *Args) Len() int {
	if a == nil || a.pairs == nil {
		return 0
	}

	return a.pairs.Len()
}

// Keys returns the keys in insertion order.
func (a *Args) Keys() []string {
	keys := make([]string, 0, a.Len())
	a.Each(func(key string, _ interface{}) {
		keys = append(keys, key)
	})

	return keys
}

// Each calls fn for every argument in insertion order.
func (a *Args) Each(fn func(key string, value interface{})) {
	if a == nil || a.pairs == nil {
		return
	}

	for pair := a.pairs.Oldest(); pair != nil; pair = pair.Next() {
		fn(pair.Key, pair.Value)
	}
}

// Merge copies every argument of other into a, overwriting existing keys.
func (a *Args) Merge(other *Args) *Args {
	other.Each(func(key string, value interface{}) {
		a.Set(key, value)
	})

	return a
}

// Clone returns a shallow copy.
func (a *Args) Clone() *Args {
	return NewArgs().Merge(a)
}

// Map returns the arguments as a plain map.
func (a *Args) Map() map[string]interface{} {
	m := make(map[string]interface{}, a.Len())
	a.Each(func(key string, value interface{}) {
		m[key] = value
	})

	return m
}

// MarshalJSON encodes the arguments as a JSON object in insertion order.
func (a *Args) MarshalJSON() ([]byte, error) {
	if a.Len() == 0 {
		return []byte("{}"), nil
	}

	return a.pairs.MarshalJSON() //nolint:wrapcheck
}
