package helpoverlay

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"rvscroll/internal/tui/state"
)

// Section is a titled group of key bindings.
type Section struct {
	Title string
	Keys  []key.Binding
}

type HelpOverlay struct {
	Sections []Section
}

func NewHelpOverlay(sections ...Section) HelpOverlay { return HelpOverlay{Sections: sections} }

// View returns grouped keys help with the current layout indicated.
// Disabled bindings are left out.
func (h HelpOverlay) View(s state.UIState) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Help (Layout: %s)\n", s.Layout)
	for _, sec := range h.Sections {
		lines := make([]string, 0, len(sec.Keys))
		for _, k := range sec.Keys {
			if !k.Enabled() {
				continue
			}
			hk := k.Help()
			lines = append(lines, fmt.Sprintf("  %s: %s", hk.Key, hk.Desc))
		}
		if len(lines) == 0 {
			continue
		}
		fmt.Fprintf(&b, "\n%s:\n", sec.Title)
		for _, l := range lines {
			b.WriteString(l + "\n")
		}
	}
	return b.String()
}
