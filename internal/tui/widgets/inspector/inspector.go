package inspector

import (
	"fmt"
	"strings"

	"rvscroll/internal/tui/state"
)

type Inspector struct{}

func NewInspector() Inspector { return Inspector{} }

// View renders the focused card with its position in the layout and whether
// a view for it is currently rendered.
func (Inspector) View(s state.UIState, c state.Card, rendered bool) string {
	cols := max(1, s.Columns)
	where := "off-screen"
	if rendered {
		where = "rendered"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "[#%d] %s\n", c.ID, c.Title)
	fmt.Fprintf(&b, "index %d  row %d  col %d  %s\n", s.Focus, s.Focus/cols, s.Focus%cols, where)
	if c.Body != "" {
		fmt.Fprintf(&b, "%s\n", c.Body)
	}
	return b.String()
}
