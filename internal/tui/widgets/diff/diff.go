package diff

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	dmp "github.com/sergi/go-diff/diffmatchpatch"

	"rvscroll/internal/tui/state"
	"rvscroll/internal/tui/util"
)

var (
	delLine = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "160", Dark: "203"})
	addLine = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "28", Dark: "114"})
	delChar = delLine.Underline(true)
	addChar = addLine.Underline(true)
	faint   = lipgloss.NewStyle().Faint(true)
)

// Line is one line of a line-level diff.
type Line struct {
	Op   dmp.Operation
	Text string
}

// Lines diffs before and after line by line.
func Lines(before, after string) []Line {
	d := dmp.New()
	a, b, table := d.DiffLinesToChars(terminate(before), terminate(after))
	diffs := d.DiffCharsToLines(d.DiffMain(a, b, false), table)
	var out []Line
	for _, df := range diffs {
		if df.Text == "" {
			continue
		}
		for _, l := range strings.Split(strings.TrimSuffix(df.Text, "\n"), "\n") {
			out = append(out, Line{Op: df.Type, Text: l})
		}
	}
	return out
}

// Summary counts inserted and deleted lines.
func Summary(lines []Line) (added, removed int) {
	for _, l := range lines {
		switch l.Op {
		case dmp.DiffInsert:
			added++
		case dmp.DiffDelete:
			removed++
		}
	}
	return added, removed
}

func terminate(s string) string {
	if s != "" && !strings.HasSuffix(s, "\n") {
		return s + "\n"
	}
	return s
}

type DiffView struct{}

func NewDiffView() DiffView { return DiffView{} }

// View renders the change between two snapshots. SideBySide aligns two
// columns with a vertical separator; Unified prefixes lines with +/- markers.
func (DiffView) View(s state.UIState, before, after string) string {
	if before == after {
		return "No changes\n"
	}
	noColor := util.NoColor(s.NoColor)
	lines := Lines(before, after)
	if s.View == state.SideBySide {
		return sideBySide(lines, s.Width, noColor)
	}
	return unified(lines, noColor)
}

// block is a run of deletions followed by insertions, or a single equal line.
type block struct {
	del, ins []string
	equal    *string
}

func blocks(lines []Line) []block {
	var out []block
	var cur block
	flush := func() {
		if len(cur.del) > 0 || len(cur.ins) > 0 {
			out = append(out, cur)
		}
		cur = block{}
	}
	for i := range lines {
		l := lines[i]
		switch l.Op {
		case dmp.DiffEqual:
			flush()
			out = append(out, block{equal: &lines[i].Text})
		case dmp.DiffDelete:
			if len(cur.ins) > 0 {
				flush()
			}
			cur.del = append(cur.del, l.Text)
		case dmp.DiffInsert:
			cur.ins = append(cur.ins, l.Text)
		}
	}
	flush()
	return out
}

func unified(lines []Line, noColor bool) string {
	var b strings.Builder
	b.WriteString("BEFORE vs AFTER (Unified)\n")
	for _, bl := range blocks(lines) {
		if bl.equal != nil {
			b.WriteString("  " + plain(faint, *bl.equal, noColor) + "\n")
			continue
		}
		// Pairs get char-level highlights; leftovers are whole-line.
		for i, d := range bl.del {
			if i < len(bl.ins) && !noColor {
				l, _ := charSpans(d, bl.ins[i])
				b.WriteString(delLine.Render("- ") + l + "\n")
				continue
			}
			b.WriteString(plain(delLine, "- "+d, noColor) + "\n")
		}
		for i, a := range bl.ins {
			if i < len(bl.del) && !noColor {
				_, r := charSpans(bl.del[i], a)
				b.WriteString(addLine.Render("+ ") + r + "\n")
				continue
			}
			b.WriteString(plain(addLine, "+ "+a, noColor) + "\n")
		}
	}
	return b.String()
}

func sideBySide(lines []Line, width int, noColor bool) string {
	const sep = " │ "
	colWidth := 40
	if width > 0 {
		colWidth = max(10, (width-len([]rune(sep)))/2)
	}
	var b strings.Builder
	b.WriteString(util.Pad("BEFORE", colWidth) + sep + "AFTER\n")
	for _, bl := range blocks(lines) {
		if bl.equal != nil {
			t := util.Pad("  "+*bl.equal, colWidth)
			fmt.Fprintf(&b, "%s%s%s\n", plain(faint, t, noColor), sep, plain(faint, "  "+*bl.equal, noColor))
			continue
		}
		n := max(len(bl.del), len(bl.ins))
		for i := range n {
			l, r := "", ""
			if i < len(bl.del) {
				l = "- " + bl.del[i]
			}
			if i < len(bl.ins) {
				r = "+ " + bl.ins[i]
			}
			fmt.Fprintf(&b, "%s%s%s\n", plain(delLine, util.Pad(l, colWidth), noColor), sep, plain(addLine, util.Fit(r, colWidth), noColor))
		}
	}
	return b.String()
}

// charSpans renders a deleted and an inserted line with the changed runs
// underlined.
func charSpans(before, after string) (left, right string) {
	d := dmp.New()
	diffs := d.DiffCleanupSemantic(d.DiffMain(before, after, false))
	var l, r strings.Builder
	for _, df := range diffs {
		switch df.Type {
		case dmp.DiffDelete:
			l.WriteString(delChar.Render(df.Text))
		case dmp.DiffInsert:
			r.WriteString(addChar.Render(df.Text))
		case dmp.DiffEqual:
			l.WriteString(delLine.Render(df.Text))
			r.WriteString(addLine.Render(df.Text))
		}
	}
	return l.String(), r.String()
}

func plain(st lipgloss.Style, s string, noColor bool) string {
	if noColor {
		return s
	}
	return st.Render(s)
}
