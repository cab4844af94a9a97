package statusbar

import (
	"strings"
	"testing"

	"rvscroll/internal/geometry"
	"rvscroll/internal/tui/state"
)

func TestStatusLine(t *testing.T) {
	s := state.UIState{
		Layout:  geometry.LayoutGrid,
		Width:   80,
		Height:  24,
		Items:   100,
		Focus:   4,
		Columns: 3,
		Notice:  "[grid]",
		Window:  geometry.Window{VisibleStartRow: 2, VisibleEndRow: 8, VirtualRowCount: 34, ScrollPercentage: 0.12},
	}
	out := NewStatusBar().View(s)
	for _, want := range []string{"[grid]", "Stretch: Off", "rows 2-8/34", "cols 3", "top 12%", "focus 5/100", "W:80 H:24"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in %q", want, out)
		}
	}
}

func TestStatusLineEmpty(t *testing.T) {
	out := NewStatusBar().View(state.UIState{Window: geometry.Empty()})
	if !strings.Contains(out, "focus -") || !strings.Contains(out, "rows 0-0/0") {
		t.Fatalf("unexpected empty status %q", out)
	}
}
