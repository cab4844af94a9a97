package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"rvscroll/internal/tui/util"
)

// LogDir is where the log panel saves its contents.
var LogDir = filepath.Join(".rvscroll", "logs")

type logMsg string

func waitLog(ch <-chan string) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		s, ok := <-ch
		if !ok {
			return nil
		}
		return logMsg(s)
	}
}

// logPanel is the scrollable, searchable log view under the grid.
type logPanel struct {
	logs      []string
	offset    int
	wrap      bool
	status    string
	frozen    bool
	frozenBuf []string
	// search state
	searching  bool
	searchBuf  string
	searchIdxs []int
	searchPos  int
}

func (p *logPanel) add(line string) {
	if p.frozen {
		p.frozenBuf = append(p.frozenBuf, line)
		return
	}
	p.logs = append(p.logs, line)
}

// handleKey consumes keys meant for the panel and reports whether it did.
func (p *logPanel) handleKey(msg tea.KeyMsg, keys keyMap) bool {
	if p.searching {
		switch msg.Type {
		case tea.KeyEnter:
			p.searching = false
			p.computeSearch()
			p.jumpToResult(0)
		case tea.KeyEsc:
			p.searching = false
			p.searchBuf = ""
			p.searchIdxs = nil
			p.searchPos = 0
		case tea.KeyBackspace, tea.KeyCtrlH:
			if r := []rune(p.searchBuf); len(r) > 0 {
				p.searchBuf = string(r[:len(r)-1])
			}
		case tea.KeyRunes, tea.KeySpace:
			p.searchBuf += string(msg.Runes)
		}
		return true
	}
	switch {
	case key.Matches(msg, keys.Search):
		p.searching = true
		p.searchBuf = ""
	case key.Matches(msg, keys.Next), key.Matches(msg, keys.Prev):
		if len(p.searchIdxs) == 0 && strings.TrimSpace(p.searchBuf) != "" {
			p.computeSearch()
		}
		if len(p.searchIdxs) > 0 {
			step := 1
			if key.Matches(msg, keys.Prev) {
				step = -1
			}
			p.jumpToResult(p.searchPos + step)
		}
	case key.Matches(msg, keys.LineUp):
		if p.offset < len(p.logs) {
			p.offset++
		}
	case key.Matches(msg, keys.LineDown):
		if p.offset > 0 {
			p.offset--
		}
	case key.Matches(msg, keys.Wrap):
		p.wrap = !p.wrap
	case key.Matches(msg, keys.Save):
		if path, err := p.save(LogDir, time.Now()); err == nil {
			p.status = "Saved logs to " + path
		} else {
			p.status = "Save failed: " + err.Error()
		}
	case key.Matches(msg, keys.Freeze):
		p.frozen = !p.frozen
		if !p.frozen && len(p.frozenBuf) > 0 {
			p.logs = append(p.logs, p.frozenBuf...)
			p.frozenBuf = nil
		}
		if p.frozen {
			p.status = "Logs frozen"
		} else {
			p.status = "Logs resumed"
		}
	default:
		return false
	}
	return true
}

// view renders the last lines entries, shifted up by offset, fitted to
// width.
func (p *logPanel) view(width, lines int, noColor bool) string {
	var out []string
	header := "Logs"
	switch {
	case p.searching:
		header = "Search: /" + p.searchBuf
	case len(p.searchIdxs) > 0:
		header = fmt.Sprintf("Logs  [%d/%d]", p.searchPos+1, len(p.searchIdxs))
	}
	if p.status != "" {
		header += "  " + p.status
	}
	out = append(out, util.Fit(header, width))
	body := max(0, lines-1)
	start := max(0, len(p.logs)-body-p.offset)
	end := min(len(p.logs), start+body)
	for i, ln := range p.logs[start:end] {
		idx := start + i
		if !p.wrap {
			ln = util.Fit(ln, width)
		}
		out = append(out, p.highlight(ln, idx, noColor))
	}
	return strings.Join(out, "\n")
}

// computeSearch builds indexes of lines containing searchBuf (case-insensitive)
func (p *logPanel) computeSearch() {
	p.searchIdxs = nil
	p.searchPos = 0
	q := strings.ToLower(strings.TrimSpace(p.searchBuf))
	if q == "" {
		return
	}
	for i, ln := range p.logs {
		if strings.Contains(strings.ToLower(ln), q) {
			p.searchIdxs = append(p.searchIdxs, i)
		}
	}
}

func (p *logPanel) jumpToResult(pos int) {
	if len(p.searchIdxs) == 0 {
		return
	}
	if pos < 0 {
		pos = len(p.searchIdxs) - 1
	}
	if pos >= len(p.searchIdxs) {
		pos = 0
	}
	p.searchPos = pos
	// show the match as the last line of the panel
	end := p.searchIdxs[p.searchPos] + 1
	p.offset = max(0, len(p.logs)-end)
}

var highlightStyle = lipgloss.NewStyle().Background(lipgloss.AdaptiveColor{Light: "228", Dark: "94"}).Foreground(lipgloss.AdaptiveColor{Light: "0", Dark: "0"})

func (p *logPanel) highlight(s string, idx int, noColor bool) string {
	q := strings.ToLower(strings.TrimSpace(p.searchBuf))
	if q == "" || len(p.searchIdxs) == 0 || noColor || !containsIndex(p.searchIdxs, idx) {
		return s
	}
	lower := strings.ToLower(s)
	if len(lower) != len(s) {
		return s
	}
	var b strings.Builder
	off := 0
	for {
		i := strings.Index(lower[off:], q)
		if i < 0 {
			break
		}
		i += off
		b.WriteString(s[off:i])
		b.WriteString(highlightStyle.Render(s[i : i+len(q)]))
		off = i + len(q)
	}
	b.WriteString(s[off:])
	return b.String()
}

func containsIndex(a []int, x int) bool {
	for _, v := range a {
		if v == x {
			return true
		}
	}
	return false
}

func (p *logPanel) save(dir string, now time.Time) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, now.Format("20060102_150405")+".log")
	data := strings.Join(append(append([]string{}, p.logs...), p.frozenBuf...), "\n")
	return path, os.WriteFile(path, []byte(data), 0644)
}
