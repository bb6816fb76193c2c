// Package normalization maps loosely written configuration words onto typed
// enumerations.
package normalization

import (
	"slices"
	"strings"

	"git.home.luguber.info/inful/docsite/internal/foundation/errors"
)

// Normalizer maps case-folded, trimmed strings to values of T.
type Normalizer[T comparable] struct {
	name     string
	values   map[string]T
	fallback T
	keys     []string
}

// New returns a Normalizer for the enumeration called name. fallback is
// returned by Normalize for unknown or empty input.
func New[T comparable](name string, values map[string]T, fallback T) *Normalizer[T] {
	n := &Normalizer[T]{
		name:     name,
		values:   make(map[string]T, len(values)),
		fallback: fallback,
		keys:     make([]string, 0, len(values)),
	}
	for k, v := range values {
		key := clean(k)
		n.values[key] = v
		n.keys = append(n.keys, key)
	}
	slices.Sort(n.keys)
	return n
}

// Normalize returns the value for raw, or the fallback.
func (n *Normalizer[T]) Normalize(raw string) T {
	if v, ok := n.values[clean(raw)]; ok {
		return v
	}
	return n.fallback
}

// Parse returns the value for raw. Empty input yields the fallback; any
// other unknown word is a validation error listing the accepted words.
func (n *Normalizer[T]) Parse(raw string) (T, error) {
	key := clean(raw)
	if key == "" {
		return n.fallback, nil
	}
	if v, ok := n.values[key]; ok {
		return v, nil
	}
	var zero T
	return zero, errors.ValidationError("invalid "+n.name).
		WithContext("value", raw).
		WithContext("valid", strings.Join(n.keys, ", ")).
		Build()
}

// Keys returns the accepted words in sorted order.
func (n *Normalizer[T]) Keys() []string {
	return slices.Clone(n.keys)
}

func clean(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
