// Package grid defines the shared vocabulary of the grid interaction engine:
// items, selection sets, pointer events and the ports a host implements so the
// engine can run against any rendering surface.
package grid

import (
	"errors"
	"sort"
)

// ErrUnsupported is returned by optional ports when the platform lacks the
// primitive. Callers fall back to an equivalent engine-driven path.
var ErrUnsupported = errors.New("grid: unsupported by platform")

// Kind is the closed set of item kinds the engine distinguishes.
type Kind int

const (
	KindTile Kind = iota
	KindContainer
)

func (k Kind) String() string {
	switch k {
	case KindTile:
		return "tile"
	case KindContainer:
		return "container"
	}
	return "unknown"
}

// ParseKind maps a kind name to a Kind. Unknown names are tiles.
func ParseKind(s string) Kind {
	if s == "container" || s == "folder" || s == "cluster" {
		return KindContainer
	}
	return KindTile
}

// Item is one visual entity in the grid. Its rectangle is never stored; it is
// read from the RenderPort when needed.
type Item struct {
	Key     string
	Kind    Kind
	Payload any
}

// --- Selection Set ---

// Set is a set of item keys.
type Set map[string]struct{}

// NewSet builds a set from keys.
func NewSet(keys ...string) Set {
	s := make(Set, len(keys))
	for _, k := range keys {
		s[k] = struct{}{}
	}
	return s
}

// Has reports membership.
func (s Set) Has(key string) bool {
	_, ok := s[key]
	return ok
}

// Add inserts key.
func (s Set) Add(key string) {
	s[key] = struct{}{}
}

// Remove deletes key.
func (s Set) Remove(key string) {
	delete(s, key)
}

// Len returns the number of keys.
func (s Set) Len() int {
	return len(s)
}

// Clone returns an independent copy. A nil set clones to an empty set.
func (s Set) Clone() Set {
	out := make(Set, len(s))
	for k := range s {
		out[k] = struct{}{}
	}
	return out
}

// Union adds every key of o to s and returns s.
func (s Set) Union(o Set) Set {
	for k := range o {
		s[k] = struct{}{}
	}
	return s
}

// Equal reports whether both sets hold the same keys.
func (s Set) Equal(o Set) bool {
	if len(s) != len(o) {
		return false
	}
	for k := range s {
		if _, ok := o[k]; !ok {
			return false
		}
	}
	return true
}

// Sorted returns the keys in lexical order.
func (s Set) Sorted() []string {
	out := make([]string, 0, len(s))
	for k := range s {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// InOrder returns the keys of s that appear in items, following item order.
func (s Set) InOrder(items []Item) []string {
	out := make([]string, 0, len(s))
	for _, it := range items {
		if s.Has(it.Key) {
			out = append(out, it.Key)
		}
	}
	return out
}
