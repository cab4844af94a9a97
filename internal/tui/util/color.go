package util

import (
	"os"

	"github.com/charmbracelet/lipgloss"

	"rvscroll/internal/tui/state"
)

// NoColor reports whether color output is off, either by flag or NO_COLOR.
func NoColor(explicit bool) bool {
	return explicit || os.Getenv("NO_COLOR") != ""
}

// Palette maps what a plan did to a chip color. Focus marks the focused card.
type Palette struct {
	Created lipgloss.Color
	Removed lipgloss.Color
	Shifted lipgloss.Color
	Updated lipgloss.Color
	Reused  lipgloss.Color
	Cached  lipgloss.Color
	Focus   lipgloss.Color
}

func DefaultPalette() Palette {
	return Palette{
		Created: lipgloss.Color("#2AA876"),
		Removed: lipgloss.Color("#D9534F"),
		Shifted: lipgloss.Color("#3D6DFF"),
		Updated: lipgloss.Color("#F0AD4E"),
		Reused:  lipgloss.Color("#6C757D"),
		Cached:  lipgloss.Color("#5A5A5A"),
		Focus:   lipgloss.Color("#FFD166"),
	}
}

// For returns the chip color of k.
func (p Palette) For(k state.TagKind) lipgloss.Color {
	switch k {
	case state.ROWS_CREATED, state.ITEMS_CREATED:
		return p.Created
	case state.ROWS_REMOVED, state.ITEMS_REMOVED:
		return p.Removed
	case state.ROWS_SHIFTED:
		return p.Shifted
	case state.ITEMS_UPDATED:
		return p.Updated
	case state.REUSED:
		return p.Reused
	default:
		return p.Cached
	}
}
