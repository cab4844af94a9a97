// Package setops holds the key-set algebra the diff engine runs over
// slot → row maps.
package setops

import (
	"cmp"
	"slices"
)

// Pair holds the left and right values of a key present in both maps.
type Pair[V any] struct {
	Left  V
	Right V
}

// IsEmpty reports whether m has no entries.
func IsEmpty[K comparable, V any](m map[K]V) bool {
	return len(m) == 0
}

// Difference returns the entries of a whose keys are absent from b.
func Difference[K comparable, V any](a, b map[K]V) map[K]V {
	out := make(map[K]V)
	for k, v := range a {
		if _, ok := b[k]; !ok {
			out[k] = v
		}
	}
	return out
}

// Intersection returns, for every key present in both maps, the pair of
// values from a (Left) and b (Right).
func Intersection[K comparable, V any](a, b map[K]V) map[K]Pair[V] {
	out := make(map[K]Pair[V])
	for k, v := range a {
		if w, ok := b[k]; ok {
			out[k] = Pair[V]{Left: v, Right: w}
		}
	}
	return out
}

// SortedKeys returns the keys of m in ascending order.
func SortedKeys[K cmp.Ordered, V any](m map[K]V) []K {
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
