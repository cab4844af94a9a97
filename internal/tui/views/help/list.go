package help

import (
	"rvscroll/internal/tui/state"
	help "rvscroll/internal/tui/widgets/helpoverlay"
)

// RenderHelp returns the grouped keys overlay content for the grid.
func RenderHelp(s state.UIState, sections ...help.Section) string {
	h := help.NewHelpOverlay(sections...)
	return h.View(s)
}
