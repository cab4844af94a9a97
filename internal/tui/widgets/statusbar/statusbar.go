package statusbar

import (
	"fmt"
	"strings"

	"rvscroll/internal/tui/state"
)

type StatusBar struct{}

func NewStatusBar() StatusBar { return StatusBar{} }

// View composes a concise status line reflecting key UI state.
func (StatusBar) View(s state.UIState) string {
	layout := fmt.Sprintf("[%s]", s.Layout)
	stretch := "Stretch: Off"
	if s.Stretch {
		stretch = "Stretch: On"
	}
	w := s.Window
	rows := fmt.Sprintf("rows %d-%d/%d", max(0, w.VisibleStartRow), max(0, w.VisibleEndRow), w.VirtualRowCount)
	cols := fmt.Sprintf("cols %d", s.Columns)
	pos := fmt.Sprintf("top %.0f%%", w.ScrollPercentage*100)
	focus := "focus -"
	if s.Items > 0 {
		focus = fmt.Sprintf("focus %d/%d", s.Focus+1, s.Items)
	}
	size := fmt.Sprintf("W:%d H:%d", s.Width, s.Height)

	parts := []string{layout, stretch, rows, cols, pos, focus, size}
	if s.Notice != "" {
		parts = append(parts, s.Notice)
	}
	return strings.Join(parts, "  ")
}
