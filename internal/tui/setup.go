package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"rvscroll/internal/config"
	"rvscroll/internal/tui/views/settings"
)

var (
	selStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "205", Dark: "213"}).Bold(true)
	errStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "160", Dark: "203"})
)

type setupModel struct {
	cfg       *config.Config
	cursor    int
	done      bool
	cancelled bool
	msg       string
}

// EditConfig opens a small TUI to adjust cfg in place. ok is false when the
// user cancelled.
func EditConfig(cfg *config.Config) (ok bool, err error) {
	m := &setupModel{cfg: cfg}
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return false, err
	}
	return m.done && !m.cancelled, nil
}

func (m *setupModel) Init() tea.Cmd { return nil }

func (m *setupModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch km.String() {
	case "q", "ctrl+c", "esc":
		m.cancelled = true
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < settings.Count-1 {
			m.cursor++
		}
	case "left", "h", "-":
		m.adjust(-1)
	case "right", "l", "+", " ":
		m.adjust(1)
	case "enter":
		if err := m.cfg.Validate(); err != nil {
			m.msg = "! " + err.Error()
			return m, nil
		}
		m.done = true
		return m, tea.Quit
	}
	return m, nil
}

func (m *setupModel) adjust(delta int) {
	settings.Adjust(m.cfg, settings.Field(m.cursor), delta)
	m.msg = ""
	if err := m.cfg.Validate(); err != nil {
		m.msg = "! " + err.Error()
	}
}

func (m *setupModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Scroller settings") + "\n\n")
	if m.msg != "" {
		b.WriteString(errStyle.Render(m.msg) + "\n")
	}
	for i, line := range settings.RenderOptions(m.cfg) {
		if i == m.cursor {
			b.WriteString(selStyle.Render("> "+line) + "\n")
			continue
		}
		b.WriteString("  " + line + "\n")
	}
	b.WriteString("\nKeys: ↑/↓ select  ←/→ change  enter save  q cancel\n")
	return b.String()
}
