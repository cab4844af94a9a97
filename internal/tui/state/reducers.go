package state

import (
	"fmt"

	"rvscroll/internal/geometry"
)

// ChromeLines is how many terminal rows the header, chips and status bar use.
const ChromeLines = 3

// PanelLines is the height of a panel under the grid when it is open.
const PanelLines = 8

// ToggleHelp flips the help overlay.
func ToggleHelp(s UIState) UIState {
	s.Help = !s.Help
	return s
}

// TogglePanel opens p, or closes it when it is already open, and resizes the
// viewport accordingly.
func TogglePanel(s UIState, p Panel) UIState {
	if s.Panel == p {
		s.Panel = NONE
	} else {
		s.Panel = p
	}
	return Resize(s, s.Width, s.Height)
}

// ToggleLayout switches between grid and list and sets a notice.
func ToggleLayout(s UIState) UIState {
	if s.Layout == geometry.LayoutList {
		s.Layout = geometry.LayoutGrid
	} else {
		s.Layout = geometry.LayoutList
	}
	s.Notice = fmt.Sprintf("[%s]", s.Layout)
	return s
}

// ToggleStretch flips grid stretch mode.
func ToggleStretch(s UIState) UIState {
	s.Stretch = !s.Stretch
	if s.Stretch {
		s.Notice = "Stretch: On"
	} else {
		s.Notice = "Stretch: Off"
	}
	return s
}

// ToggleView switches between Unified and SideBySide diff views.
func ToggleView(s UIState) UIState {
	if s.View == Unified {
		s.View = SideBySide
	} else {
		s.View = Unified
	}
	return s
}

// Resize updates the terminal size and the viewport height, and falls back
// to the unified diff when too narrow for two columns.
// Threshold heuristic: need at least 2*MinCol plus 3 chars for separator/gutters.
func Resize(s UIState, width, height int) UIState {
	s.Width = width
	s.Height = height
	vp := height - ChromeLines
	if s.Panel != NONE {
		vp -= PanelLines
	}
	s.Viewport = max(1, vp)
	threshold := 2*s.MinCol + 3
	if s.View == SideBySide && s.Width < threshold {
		s.View = Unified
		s.Notice = "Narrow width: using unified view"
	}
	return s
}

// ApplyWindow records the last applied window and the scroll range it
// implies.
func ApplyWindow(s UIState, w geometry.Window) UIState {
	s.Window = w
	s.Columns = max(1, w.ActualColumnCount)
	s.Items = w.VirtualItemCount
	s.RowHeight = w.ItemHeight
	s.MaxScroll = max(0, w.VirtualHeight-float64(s.Viewport))
	if s.Focus >= s.Items {
		s.Focus = max(0, s.Items-1)
	}
	s.ScrollTop = clampTop(s, s.ScrollTop)
	return s
}

// MoveFocus moves the focused item by delta and scrolls just enough to keep
// its row in view.
func MoveFocus(s UIState, delta int) UIState {
	if s.Items == 0 {
		return s
	}
	s.Focus = min(max(0, s.Focus+delta), s.Items-1)
	return Follow(s)
}

// FocusEdge jumps to the first or last item.
func FocusEdge(s UIState, last bool) UIState {
	if last {
		return MoveFocus(s, s.Items)
	}
	return MoveFocus(s, -s.Items)
}

// Follow adjusts ScrollTop so the focused row is fully visible.
func Follow(s UIState) UIState {
	if s.RowHeight <= 0 {
		return s
	}
	top := float64(s.Focus/max(1, s.Columns)) * s.RowHeight
	switch {
	case top < s.ScrollTop:
		s.ScrollTop = top
	case top+s.RowHeight > s.ScrollTop+float64(s.Viewport):
		s.ScrollTop = top + s.RowHeight - float64(s.Viewport)
	}
	s.ScrollTop = clampTop(s, s.ScrollTop)
	return s
}

// ScrollBy moves the viewport without touching the focus.
func ScrollBy(s UIState, delta float64) UIState {
	s.ScrollTop = clampTop(s, s.ScrollTop+delta)
	return s
}

// ScrollTo moves the viewport to top.
func ScrollTo(s UIState, top float64) UIState {
	s.ScrollTop = clampTop(s, top)
	return s
}

func clampTop(s UIState, top float64) float64 {
	return min(max(0, top), s.MaxScroll)
}
