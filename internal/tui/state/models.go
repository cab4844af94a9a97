package state

import "rvscroll/internal/geometry"

// Panel selects what is shown under the grid.
type Panel int

const (
	NONE Panel = iota
	DIFF
	LOGS
	INSPECT
)

// DiffMode controls how the rendered-set diff is drawn.
type DiffMode int

const (
	Unified DiffMode = iota
	SideBySide
)

// UIState holds cross-widget state used by the status bar, panels and the
// grid. All units are terminal cells.
type UIState struct {
	// Terminal and viewport
	Width    int
	Height   int
	Viewport int // rows of the terminal given to the grid
	MinCol   int

	// Layout toggles
	Layout  geometry.LayoutType
	Stretch bool
	View    DiffMode
	Panel   Panel
	Help    bool
	NoColor bool

	// Position
	Items     int
	Columns   int
	Focus     int
	ScrollTop float64
	MaxScroll float64
	RowHeight float64
	Window    geometry.Window

	// Notices and ephemeral messages
	Notice string
}

// Card is the item type the demo grid renders.
type Card struct {
	ID    int
	Title string
	Body  string
}
