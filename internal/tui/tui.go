package tui

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/sync/errgroup"

	"rvscroll/internal/command"
	"rvscroll/internal/config"
	"rvscroll/internal/geometry"
	"rvscroll/internal/scroller"
	"rvscroll/internal/tui/state"
	"rvscroll/internal/tui/util"
	helpview "rvscroll/internal/tui/views/help"
	"rvscroll/internal/tui/views/trace"
	"rvscroll/internal/tui/widgets/diff"
	"rvscroll/internal/tui/widgets/inspector"
	"rvscroll/internal/tui/widgets/statusbar"
)

// Options configures the demo.
type Options struct {
	Config  *config.Config
	Items   int
	NoColor bool
	// Logf also receives every line shown in the log panel.
	Logf func(format string, args ...any)
}

// RunDemo shows a grid of generated cards driven by a Scroller until the
// user quits or ctx is done.
func RunDemo(ctx context.Context, o Options) error {
	cfg := o.Config
	if cfg == nil {
		cfg = config.Default()
	}
	logCh := make(chan string, 256)
	logf := func(format string, args ...any) {
		line := fmt.Sprintf(format, args...)
		if o.Logf != nil {
			o.Logf("%s", line)
		}
		select {
		case logCh <- line:
		default:
		}
	}

	host := NewHost(nil)
	opts := scroller.FromConfig(cfg)
	opts.Logf = logf
	sc, err := scroller.New[state.Card](host, opts)
	if err != nil {
		return err
	}
	sc.SetTrackBy(func(_ int, c state.Card) any { return c.ID })
	sc.SetItemEqual(func(a, b state.Card) bool { return a == b })

	m := newModel(cfg, sc, GenerateCards(o.Items, 0), logCh, o.NoColor)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	host.attach(p.Send)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := sc.Run(gctx); !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		defer cancel()
		_, err := p.Run()
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return err
	})
	return g.Wait()
}

// ===== Model =====

// grid is the slice of the scroller the model drives. It exists so tests can
// substitute a recorder.
type grid interface {
	Scroll(top float64)
	Resize(r geometry.Rect)
	SetItems(items []state.Card)
	SetSizing(o geometry.SizingOptions) error
	SetStretch(v bool)
	Do(u command.User)
	Focus(index int)
	Window() geometry.Window
}

type model struct {
	ui     state.UIState
	keys   keyMap
	sc     grid
	sizing geometry.SizingOptions

	cards  []state.Card
	nextID int

	frame    frameMsg
	prevText string
	tags     []state.Tag

	logs  logPanel
	logCh <-chan string
}

func newModel(cfg *config.Config, sc grid, cards []state.Card, logCh <-chan string, noColor bool) *model {
	m := &model{
		ui: state.UIState{
			MinCol:  20,
			Layout:  cfg.Sizing.Layout,
			Stretch: cfg.Stretch,
			NoColor: util.NoColor(noColor),
			Window:  geometry.Empty(),
		},
		keys:   defaultKeys(),
		sc:     sc,
		sizing: cfg.Sizing,
		cards:  cards,
		nextID: len(cards),
		logCh:  logCh,
	}
	sc.SetItems(cards)
	return m
}

func (m *model) Init() tea.Cmd { return waitLog(m.logCh) }

// Update handles all TUI interactions.
func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch v := msg.(type) {
	case tea.WindowSizeMsg:
		m.ui = state.Resize(m.ui, v.Width, v.Height)
		m.resize()
	case tea.MouseMsg:
		if v.Action != tea.MouseActionPress {
			return m, nil
		}
		switch v.Button {
		case tea.MouseButtonWheelUp:
			m.scrollBy(-m.rowHeight())
		case tea.MouseButtonWheelDown:
			m.scrollBy(m.rowHeight())
		}
	case tea.KeyMsg:
		return m, m.handleKey(v)
	case frameMsg:
		m.applyFrame(v)
	case scrollToMsg:
		// The scroller already clamped and adopted the offset.
		m.ui.ScrollTop = float64(v)
	case logMsg:
		m.logs.add(string(v))
		return m, waitLog(m.logCh)
	}
	return m, nil
}

func (m *model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if m.ui.Panel == state.LOGS && m.logs.handleKey(msg, m.keys) {
		return nil
	}
	m.ui.Notice = ""
	k := m.keys
	cols := max(1, m.ui.Columns)
	switch {
	case key.Matches(msg, k.Quit):
		return tea.Quit
	case key.Matches(msg, k.Help):
		m.ui = state.ToggleHelp(m.ui)
	case key.Matches(msg, k.Up):
		m.moveFocus(-cols)
	case key.Matches(msg, k.Down):
		m.moveFocus(cols)
	case key.Matches(msg, k.Left):
		m.moveFocus(-1)
	case key.Matches(msg, k.Right):
		m.moveFocus(1)
	case key.Matches(msg, k.PageUp):
		m.moveFocus(-cols * m.pageRows())
	case key.Matches(msg, k.PageDown):
		m.moveFocus(cols * m.pageRows())
	case key.Matches(msg, k.Home):
		m.ui = state.FocusEdge(m.ui, false)
		m.commitFocus()
	case key.Matches(msg, k.End):
		m.ui = state.FocusEdge(m.ui, true)
		m.commitFocus()
	case key.Matches(msg, k.LineUp):
		m.scrollBy(-1)
	case key.Matches(msg, k.LineDown):
		m.scrollBy(1)
	case key.Matches(msg, k.Reveal):
		m.sc.Focus(m.ui.Focus)
		m.sc.Do(command.ToItem(m.ui.Focus))
	case key.Matches(msg, k.Layout):
		m.ui = state.ToggleLayout(m.ui)
		m.sizing.Layout = m.ui.Layout
		if err := m.sc.SetSizing(m.sizing); err != nil {
			m.ui.Notice = err.Error()
		}
	case key.Matches(msg, k.Stretch):
		m.ui = state.ToggleStretch(m.ui)
		m.sc.SetStretch(m.ui.Stretch)
	case key.Matches(msg, k.Prepend):
		c := m.newCard()
		m.setCards(append([]state.Card{c}, m.cards...))
		m.ui.Notice = fmt.Sprintf("Added #%d", c.ID)
	case key.Matches(msg, k.Append):
		more := GenerateCards(100, m.nextID)
		m.nextID += len(more)
		m.setCards(append(append([]state.Card{}, m.cards...), more...))
	case key.Matches(msg, k.Delete):
		if f := m.ui.Focus; f >= 0 && f < len(m.cards) {
			id := m.cards[f].ID
			next := append(append([]state.Card{}, m.cards[:f]...), m.cards[f+1:]...)
			m.setCards(next)
			m.ui.Notice = fmt.Sprintf("Deleted #%d", id)
		}
	case key.Matches(msg, k.Diff):
		m.ui = state.TogglePanel(m.ui, state.DIFF)
		m.resize()
	case key.Matches(msg, k.Logs):
		m.ui = state.TogglePanel(m.ui, state.LOGS)
		m.resize()
	case key.Matches(msg, k.Inspect):
		m.ui = state.TogglePanel(m.ui, state.INSPECT)
		m.resize()
	case key.Matches(msg, k.View):
		m.ui = state.ToggleView(m.ui)
	case key.Matches(msg, k.Copy):
		if f := m.ui.Focus; f >= 0 && f < len(m.cards) {
			m.copy(fmt.Sprintf("#%d %s\n%s", m.cards[f].ID, m.cards[f].Title, m.cards[f].Body))
		}
	case key.Matches(msg, k.CopyTrace):
		m.copy(m.frame.Text)
	}
	return nil
}

func (m *model) copy(s string) {
	if err := clipboard.WriteAll(s); err != nil {
		m.ui.Notice = "Copy failed: " + err.Error()
		return
	}
	m.ui.Notice = "Copied"
}

func (m *model) newCard() state.Card {
	c := GenerateCards(1, m.nextID)[0]
	m.nextID++
	return c
}

func (m *model) setCards(cards []state.Card) {
	m.cards = cards
	m.ui.Items = len(cards)
	if m.ui.Focus >= len(cards) {
		m.ui.Focus = max(0, len(cards)-1)
	}
	m.sc.SetItems(cards)
}

func (m *model) moveFocus(delta int) {
	m.ui = state.MoveFocus(m.ui, delta)
	m.commitFocus()
}

func (m *model) commitFocus() {
	m.sc.Focus(m.ui.Focus)
	m.sc.Scroll(m.ui.ScrollTop)
}

func (m *model) scrollBy(delta float64) {
	m.ui = state.ScrollBy(m.ui, delta)
	m.sc.Scroll(m.ui.ScrollTop)
}

func (m *model) resize() {
	m.sc.Resize(geometry.Rect{Width: float64(m.ui.Width), Height: float64(m.ui.Viewport)})
}

func (m *model) rowHeight() float64 {
	if m.ui.RowHeight > 0 {
		return m.ui.RowHeight
	}
	return m.sizing.ItemHeight
}

func (m *model) pageRows() int {
	return max(1, int(float64(m.ui.Viewport)/math.Max(1, m.rowHeight())))
}

func (m *model) applyFrame(f frameMsg) {
	if f.Text != m.frame.Text {
		m.prevText = m.frame.Text
	}
	m.frame = f
	top := m.ui.ScrollTop
	m.ui = state.ApplyWindow(m.ui, m.sc.Window())
	if f.Columns > 0 {
		m.ui.Columns = f.Columns
	}
	if m.ui.ScrollTop != top {
		m.sc.Scroll(m.ui.ScrollTop)
	}
	m.tags = util.ComputeTags(f.Counts, f.Reused, f.Cached)
}

// ===== Views =====

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	cardStyle  = lipgloss.NewStyle()
	faintStyle = lipgloss.NewStyle().Faint(true)
)

func (m *model) View() string {
	if m.ui.Help {
		return helpview.RenderHelp(m.ui, m.keys.sections()...)
	}
	var b strings.Builder
	header := fmt.Sprintf("rvscroll  %d cards", len(m.cards))
	if m.ui.NoColor {
		b.WriteString(util.Fit(header, m.ui.Width) + "\n")
	} else {
		b.WriteString(titleStyle.Render(util.Fit(header, m.ui.Width)) + "\n")
	}
	b.WriteString(trace.RenderTags(m.tags, m.ui.NoColor) + "\n")
	b.WriteString(m.gridView())
	switch m.ui.Panel {
	case state.DIFF:
		b.WriteString(clipLines(diff.NewDiffView().View(m.ui, m.prevText, m.frame.Text), state.PanelLines))
	case state.LOGS:
		b.WriteString(clipLines(m.logs.view(max(1, m.ui.Width), state.PanelLines, m.ui.NoColor), state.PanelLines))
	case state.INSPECT:
		b.WriteString(clipLines(m.inspectView(), state.PanelLines))
	}
	b.WriteString(util.Fit(statusbar.NewStatusBar().View(m.ui), m.ui.Width))
	return b.String()
}

// gridView draws Viewport terminal lines starting at ScrollTop. Lines not
// covered by a rendered row stay blank, which is what a too-small buffer
// looks like.
func (m *model) gridView() string {
	var b strings.Builder
	width := m.cellWidth()
	top := int(math.Floor(m.ui.ScrollTop))
	for y := 0; y < m.ui.Viewport; y++ {
		contentY := float64(top + y)
		row, ok := m.rowAt(contentY)
		if !ok {
			b.WriteString("\n")
			continue
		}
		line := int(contentY - row.Offset)
		cols := max(1, m.ui.Columns)
		parts := make([]string, 0, cols)
		for c := 0; c < cols; c++ {
			card, ok := row.Cards[c]
			if !ok {
				parts = append(parts, strings.Repeat(" ", width))
				continue
			}
			parts = append(parts, m.cardLine(card, row.Indices[c], line, width))
		}
		b.WriteString(strings.Join(parts, "") + "\n")
	}
	return b.String()
}

func (m *model) rowAt(y float64) (RowSnap, bool) {
	h := m.rowHeight()
	for _, r := range m.frame.Rows {
		if y >= r.Offset && y < r.Offset+h {
			return r, true
		}
	}
	return RowSnap{}, false
}

func (m *model) cellWidth() int {
	if w := m.frame.Frame.ItemWidth; w > 0 {
		if m.ui.Layout == geometry.LayoutList {
			return max(1, m.ui.Width)
		}
		return max(1, int(w))
	}
	return max(1, m.ui.Width/max(1, m.ui.Columns))
}

func (m *model) cardLine(c state.Card, index, line, width int) string {
	var text string
	switch line {
	case 0:
		text = fmt.Sprintf(" #%d %s", c.ID, c.Title)
	case 1:
		text = "  " + c.Body
	}
	text = util.Pad(text, width)
	if m.ui.NoColor {
		if index == m.ui.Focus && line == 0 {
			return ">" + util.Pad(strings.TrimPrefix(text, " "), width-1)
		}
		return text
	}
	st := cardStyle
	switch {
	case index == m.ui.Focus:
		st = st.Foreground(util.DefaultPalette().Focus).Reverse(true)
	case line > 1:
		st = faintStyle
	}
	return st.Render(text)
}

func (m *model) inspectView() string {
	f := m.ui.Focus
	if f < 0 || f >= len(m.cards) {
		return ""
	}
	rendered := false
	for _, r := range m.frame.Rows {
		for _, idx := range r.Indices {
			if idx == f {
				rendered = true
			}
		}
	}
	return inspector.NewInspector().View(m.ui, m.cards[f], rendered)
}

func clipLines(s string, n int) string {
	lines := strings.Split(strings.TrimSuffix(s, "\n"), "\n")
	if len(lines) > n {
		lines = lines[:n]
	}
	for len(lines) < n {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n") + "\n"
}
