package scroller

import (
	"rvscroll/internal/command"
	"rvscroll/internal/geometry"
)

func (s *Scroller[T]) setFocused(idx int) {
	s.lastFocused = idx
	s.mu.Lock()
	s.focused = idx
	s.mu.Unlock()
}

func focusRow(idx int, w geometry.Window) int {
	return idx / max(1, w.ActualColumnCount)
}

// dropFocusOutside forgets the last focused item once the user scrolls it
// out of the visible rows.
func (s *Scroller[T]) dropFocusOutside(w geometry.Window) {
	if s.lastFocused < 0 {
		return
	}
	row := focusRow(s.lastFocused, w)
	if row < w.VisibleStartRow || row > w.VisibleEndRow {
		s.setFocused(-1)
	}
}

// correctFocus scrolls the last focused item back into view after a column
// change unless its row is strictly inside the visible rows.
func (s *Scroller[T]) correctFocus() {
	if s.lastFocused < 0 {
		return
	}
	w := s.prev
	row := focusRow(s.lastFocused, w)
	if row > w.VisibleStartRow && row < w.VisibleEndRow {
		return
	}
	s.pending.user.set(command.ToItem(s.lastFocused))
}
