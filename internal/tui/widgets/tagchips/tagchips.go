package tagchips

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"rvscroll/internal/tui/state"
	"rvscroll/internal/tui/util"
)

// View renders plan tags in a stable order using colored chips when
// possible and ASCII fallbacks when color is disabled or not desired.
func View(tags []state.Tag, noColor bool) string {
	if len(tags) == 0 {
		return ""
	}
	noColor = util.NoColor(noColor)

	parts := make([]string, 0, len(tags))
	for _, t := range tags {
		parts = append(parts, renderChip(t, noColor))
	}
	return strings.Join(parts, " ")
}

func renderChip(t state.Tag, noColor bool) string {
	label := chipLabel(t)
	if noColor {
		return fmt.Sprintf("[%s]", label)
	}
	return chipStyle(t).Render(label)
}

func chipLabel(t state.Tag) string {
	switch t.Kind {
	case state.ROWS_CREATED:
		return fmt.Sprintf("Rows +%d", t.Value)
	case state.ROWS_REMOVED:
		return fmt.Sprintf("Rows -%d", t.Value)
	case state.ROWS_SHIFTED:
		return fmt.Sprintf("Shifted %d", t.Value)
	case state.ITEMS_CREATED:
		return fmt.Sprintf("Items +%d", t.Value)
	case state.ITEMS_REMOVED:
		return fmt.Sprintf("Items -%d", t.Value)
	case state.ITEMS_UPDATED:
		return fmt.Sprintf("Updated %d", t.Value)
	case state.REUSED:
		return fmt.Sprintf("Reused %d", t.Value)
	case state.CACHED:
		return fmt.Sprintf("Cached %d", t.Value)
	default:
		return "Tag"
	}
}

func chipStyle(t state.Tag) lipgloss.Style {
	st := lipgloss.NewStyle().Padding(0, 1).Bold(true).
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(util.DefaultPalette().For(t.Kind))
	if t.Kind == state.ITEMS_UPDATED {
		st = st.Foreground(lipgloss.Color("#111111"))
	}
	return st
}
