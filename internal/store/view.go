package store

import (
	"cmp"
	"slices"
)

// TrackBy maps an item to its identity key. Keys must be comparable at
// runtime (strings, numbers, booleans or comparable structs).
type TrackBy[T any] func(index int, item T) any

// TrackByIndex keys items by their position.
func TrackByIndex[T any](index int, _ T) any { return index }

// ViewInfo is what the store remembers about one item view.
type ViewInfo[T any] struct {
	View        ViewHandle
	Item        T
	ItemIndex   int
	Placeholder bool

	cell *Cell[T] // owning cell while rendered
}

// ViewRecord maps a track-by key to its view.
type ViewRecord[T any] map[any]ViewInfo[T]

// Sorted returns the records ordered by item index.
func (r ViewRecord[T]) Sorted() []ViewInfo[T] {
	out := make([]ViewInfo[T], 0, len(r))
	for _, v := range r {
		out = append(out, v)
	}
	slices.SortFunc(out, func(a, b ViewInfo[T]) int { return cmp.Compare(a.ItemIndex, b.ItemIndex) })
	return out
}

// Indices returns the sorted item indices held by the record.
func (r ViewRecord[T]) Indices() []int {
	out := make([]int, 0, len(r))
	for _, v := range r {
		out = append(out, v.ItemIndex)
	}
	slices.Sort(out)
	return out
}

func isDestroyed(v ViewHandle) bool {
	if d, ok := v.(Destroyable); ok {
		return d.Destroyed()
	}
	return false
}
