package store

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// RowSnapshot is the observable state of one slot.
type RowSnapshot struct {
	VirtualRow int         `json:"row"`
	Offset     float64     `json:"offset"`
	Items      map[int]int `json:"items"` // column → data index
}

// Snapshot is the observable state of the whole store, keyed by slot.
type Snapshot map[int]RowSnapshot

// Snapshot captures slot → row, offset and column → data index.
func (s *Store[T]) Snapshot() Snapshot {
	out := make(Snapshot, len(s.state.Rows))
	for slot, row := range s.state.Rows {
		items := make(map[int]int, len(row.Items))
		for col, cell := range row.Items {
			items[col] = cell.DataIndex
		}
		out[slot] = RowSnapshot{VirtualRow: row.VirtualRow, Offset: row.Offset, Items: items}
	}
	return out
}

// Equal reports whether both snapshots describe the same rendering.
func (s Snapshot) Equal(o Snapshot) bool {
	return maps.EqualFunc(s, o, func(a, b RowSnapshot) bool {
		return a.VirtualRow == b.VirtualRow && a.Offset == b.Offset && maps.Equal(a.Items, b.Items)
	})
}

// String renders one line per slot, e.g. "0: row 4 @800 [12 13 14]".
func (s Snapshot) String() string {
	var b strings.Builder
	for _, slot := range slices.Sorted(maps.Keys(s)) {
		r := s[slot]
		cols := slices.Sorted(maps.Keys(r.Items))
		idx := make([]string, len(cols))
		for i, c := range cols {
			idx[i] = fmt.Sprint(r.Items[c])
		}
		fmt.Fprintf(&b, "%d: row %d @%g [%s]\n", slot, r.VirtualRow, r.Offset, strings.Join(idx, " "))
	}
	return b.String()
}

// DataIndices returns every data index in the snapshot, ascending.
func (s Snapshot) DataIndices() []int {
	var out []int
	for _, r := range s {
		for _, idx := range r.Items {
			out = append(out, idx)
		}
	}
	slices.Sort(out)
	return out
}
