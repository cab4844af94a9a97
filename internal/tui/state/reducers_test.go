package state

import (
	"testing"

	"rvscroll/internal/geometry"
)

func window(items, columns int) geometry.Window {
	rows := (items + columns - 1) / columns
	return geometry.Window{
		VirtualItemCount:  items,
		ActualColumnCount: columns,
		ItemHeight:        3,
		VirtualHeight:     float64(rows * 3),
	}
}

func TestToggleHelp(t *testing.T) {
	s := ToggleHelp(UIState{})
	if !s.Help {
		t.Fatalf("expected Help to be true")
	}
}

func TestToggleLayoutSetsNotice(t *testing.T) {
	s := UIState{Layout: geometry.LayoutGrid}
	s = ToggleLayout(s)
	if s.Layout != geometry.LayoutList || s.Notice != "[list]" {
		t.Fatalf("expected list layout and notice, got %q %q", s.Layout, s.Notice)
	}
	s = ToggleLayout(s)
	if s.Layout != geometry.LayoutGrid || s.Notice == "" {
		t.Fatalf("expected grid layout and notice")
	}
}

func TestToggleView(t *testing.T) {
	s := ToggleView(UIState{View: Unified})
	if s.View != SideBySide {
		t.Fatalf("expected SideBySide view")
	}
}

func TestResizeFallbackToUnified(t *testing.T) {
	s := UIState{View: SideBySide, MinCol: 20}
	s = Resize(s, 30, 24) // threshold = 2*20+3 = 43; 30 < 43 => unified
	if s.View != Unified {
		t.Fatalf("expected Unified after resize fallback")
	}
	if s.Notice == "" {
		t.Fatalf("expected fallback notice to be set")
	}
}

func TestPanelShrinksViewport(t *testing.T) {
	s := Resize(UIState{}, 80, 24)
	if s.Viewport != 24-ChromeLines {
		t.Fatalf("unexpected viewport %d", s.Viewport)
	}
	s = TogglePanel(s, LOGS)
	if s.Panel != LOGS || s.Viewport != 24-ChromeLines-PanelLines {
		t.Fatalf("unexpected panel state %v %d", s.Panel, s.Viewport)
	}
	s = TogglePanel(s, LOGS)
	if s.Panel != NONE {
		t.Fatalf("expected panel closed")
	}
}

func TestMoveFocusFollows(t *testing.T) {
	s := Resize(UIState{}, 80, 12) // viewport 9 = three rows
	s = ApplyWindow(s, window(100, 4))
	s = MoveFocus(s, 4*3) // row 3
	if s.Focus != 12 || s.ScrollTop != 3 {
		t.Fatalf("expected focus 12 at top 3, got %d %v", s.Focus, s.ScrollTop)
	}
	s = MoveFocus(s, -12)
	if s.Focus != 0 || s.ScrollTop != 0 {
		t.Fatalf("expected focus 0 at top 0, got %d %v", s.Focus, s.ScrollTop)
	}
	s = MoveFocus(s, -1)
	if s.Focus != 0 {
		t.Fatalf("focus must clamp at 0")
	}
}

func TestFocusEdgeAndClamp(t *testing.T) {
	s := Resize(UIState{}, 80, 12)
	s = ApplyWindow(s, window(10, 4)) // 3 rows, 9 cells tall
	s = FocusEdge(s, true)
	if s.Focus != 9 || s.ScrollTop != 0 {
		t.Fatalf("expected last item without scrolling, got %d %v", s.Focus, s.ScrollTop)
	}
	s = ScrollBy(s, 100)
	if s.ScrollTop != s.MaxScroll {
		t.Fatalf("scroll must clamp to %v, got %v", s.MaxScroll, s.ScrollTop)
	}
}

func TestApplyWindowClampsFocus(t *testing.T) {
	s := UIState{Focus: 50, Viewport: 9}
	s = ApplyWindow(s, window(5, 1))
	if s.Focus != 4 {
		t.Fatalf("expected focus clamped to 4, got %d", s.Focus)
	}
}
