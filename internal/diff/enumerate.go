package diff

import "rvscroll/internal/geometry"

// ForRows calls fn for every row in start..end with the slot the row lands on.
// Slots roll over modulo actualRows so a row scrolled in by a whole number of
// rows reuses the slot of the row it pushed out.
func ForRows(start, end, actualRows int, fn func(row, slot int)) {
	if actualRows <= 0 || start < 0 {
		return
	}
	for r := start; r <= end; r++ {
		fn(r, r%actualRows)
	}
}

// ForColumns calls fn for columns start..end of row whose data index is
// below itemCount.
func ForColumns(start, end, row, columns, itemCount int, fn func(column, dataIndex int)) {
	for c := start; c <= end; c++ {
		idx := row*columns + c
		if idx < itemCount {
			fn(c, idx)
		}
	}
}

// ForColumnsWithPrev calls fn for columns start..end with the data index the
// column holds now and held before. Indices are not bounded by item count.
func ForColumnsWithPrev(start, end, row, columns, prevRow, prevColumns int, fn func(column, dataIndex, prevDataIndex int)) {
	for c := start; c <= end; c++ {
		fn(c, row*columns+c, prevRow*prevColumns+c)
	}
}

// SlotMap maps slot → virtual row for the visible rows of w. Windows with no
// actual rows or no visible range yield an empty map. A visible range longer
// than ActualRowCount is cut to ActualRowCount rows since the extra rows would
// only overwrite slots.
func SlotMap(w geometry.Window) map[int]int {
	m := make(map[int]int)
	if w.VisibleEndRow < w.VisibleStartRow || w.ActualRowCount <= 0 {
		return m
	}
	end := w.VisibleEndRow
	if limit := w.VisibleStartRow + w.ActualRowCount - 1; end > limit {
		end = limit
	}
	ForRows(w.VisibleStartRow, end, w.ActualRowCount, func(row, slot int) {
		m[slot] = row
	})
	return m
}
