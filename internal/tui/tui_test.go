package tui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"rvscroll/internal/command"
	"rvscroll/internal/config"
	"rvscroll/internal/geometry"
	"rvscroll/internal/store"
	"rvscroll/internal/tui/state"
)

// fakeGrid records what the model asks of the scroller.
type fakeGrid struct {
	scrolls []float64
	rect    geometry.Rect
	items   []state.Card
	sizing  geometry.SizingOptions
	stretch bool
	user    []command.User
	focus   int
	window  geometry.Window
}

func (g *fakeGrid) Scroll(top float64) { g.scrolls = append(g.scrolls, top) }
func (g *fakeGrid) Resize(r geometry.Rect) { g.rect = r }
func (g *fakeGrid) SetItems(c []state.Card) { g.items = c }
func (g *fakeGrid) SetStretch(v bool) { g.stretch = v }
func (g *fakeGrid) Do(u command.User) { g.user = append(g.user, u) }
func (g *fakeGrid) Focus(index int) { g.focus = index }
func (g *fakeGrid) Window() geometry.Window { return g.window }
func (g *fakeGrid) SetSizing(o geometry.SizingOptions) error {
	if err := o.Validate(); err != nil {
		return err
	}
	g.sizing = o
	return nil
}

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

// setup builds a model over 100 cards in an 80x15 terminal and delivers the
// first frame through a real store and host.
func setup(t *testing.T) (*model, *fakeGrid) {
	t.Helper()
	g := &fakeGrid{}
	cfg := config.Default()
	m := newModel(cfg, g, GenerateCards(100, 0), nil, true)
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 15})
	if g.rect != (geometry.Rect{Width: 80, Height: 12}) {
		t.Fatalf("unexpected rect %+v", g.rect)
	}

	var frame frameMsg
	h := NewHost(func(msg tea.Msg) {
		if f, ok := msg.(frameMsg); ok {
			frame = f
		}
	})
	st := store.New[state.Card](h, store.Options[state.Card]{})
	st.SetData(g.items)
	meas := geometry.Measure(g.rect, cfg.Sizing)
	g.window = geometry.ComputeWindow(0, meas, len(g.items), 1, cfg.Sizing)
	render(st, h, geometry.Empty(), g.window)
	m.Update(frame)
	return m, g
}

func TestModelAppliesFrame(t *testing.T) {
	m, _ := setup(t)
	if m.ui.Columns != 3 || m.ui.Items != 100 {
		t.Fatalf("unexpected ui %+v", m.ui)
	}
	if m.ui.MaxScroll != 34*3-12 {
		t.Fatalf("unexpected max scroll %v", m.ui.MaxScroll)
	}
	out := m.View()
	if !strings.Contains(out, ">#0 Quiet Harbor") {
		t.Fatalf("focused card missing from view:\n%s", out)
	}
	if !strings.Contains(out, "#4 緑の Harbor") {
		t.Fatalf("wide-rune card missing from view:\n%s", out)
	}
	if !strings.Contains(out, "[Rows +5]") {
		t.Fatalf("missing trace chips:\n%s", out)
	}
}

func TestModelFocusFollows(t *testing.T) {
	m, g := setup(t)
	for range 4 {
		m.Update(tea.KeyMsg{Type: tea.KeyDown})
	}
	if g.focus != 12 {
		t.Fatalf("expected focus 12, got %d", g.focus)
	}
	// row 4 spans 12..15, viewport is 12 tall
	if last := g.scrolls[len(g.scrolls)-1]; last != 3 {
		t.Fatalf("expected scroll 3, got %v", last)
	}
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if len(g.user) != 1 || g.user[0] != command.ToItem(12) {
		t.Fatalf("expected reveal command, got %v", g.user)
	}
}

func TestModelLayoutToggle(t *testing.T) {
	m, g := setup(t)
	m.Update(runes("t"))
	if g.sizing.Layout != geometry.LayoutList || m.ui.Notice != "[list]" {
		t.Fatalf("expected list layout, got %q %q", g.sizing.Layout, m.ui.Notice)
	}
	m.Update(runes("s"))
	if !g.stretch {
		t.Fatalf("expected stretch on")
	}
}

func TestModelDataEdits(t *testing.T) {
	m, g := setup(t)
	m.Update(runes("p"))
	if len(g.items) != 101 || g.items[0].ID != 100 {
		t.Fatalf("expected a prepended card 100, got %d items", len(g.items))
	}
	m.Update(runes("x"))
	if len(g.items) != 100 || g.items[0].ID != 0 {
		t.Fatalf("expected the focused card deleted")
	}
	m.Update(runes("a"))
	if len(g.items) != 200 || g.items[199].ID != 200 {
		t.Fatalf("expected 100 appended cards, last id %d", g.items[len(g.items)-1].ID)
	}
}

func TestModelScrollToFromScroller(t *testing.T) {
	m, g := setup(t)
	n := len(g.scrolls)
	m.Update(scrollToMsg(30))
	if m.ui.ScrollTop != 30 {
		t.Fatalf("expected top 30, got %v", m.ui.ScrollTop)
	}
	if len(g.scrolls) != n {
		t.Fatalf("scroller-initiated scrolls must not be echoed")
	}
}

func TestModelPanelsResize(t *testing.T) {
	m, g := setup(t)
	m.Update(runes("d"))
	if m.ui.Panel != state.DIFF || g.rect.Height != 15-state.ChromeLines-state.PanelLines {
		t.Fatalf("unexpected panel %v rect %+v", m.ui.Panel, g.rect)
	}
	if lines := strings.Count(m.View(), "\n"); lines != 14 {
		t.Fatalf("view must fill the terminal, got %d lines", lines+1)
	}
	m.Update(runes("d"))
	if g.rect.Height != 12 {
		t.Fatalf("closing the panel must restore the viewport")
	}
}

func TestModelHelp(t *testing.T) {
	m, _ := setup(t)
	m.Update(runes("?"))
	out := m.View()
	if !strings.Contains(out, "Navigation:") || !strings.Contains(out, "t: toggle list/grid") {
		t.Fatalf("unexpected help:\n%s", out)
	}
}

func TestLogPanelSearchAndSave(t *testing.T) {
	m, _ := setup(t)
	m.Update(runes("L"))
	for _, l := range []string{"store: one", "scroller: purged 3 cached views", "store: two"} {
		m.Update(logMsg(l))
	}
	m.Update(runes("/"))
	m.Update(runes("purged"))
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if len(m.logs.searchIdxs) != 1 || m.logs.searchIdxs[0] != 1 {
		t.Fatalf("unexpected matches %v", m.logs.searchIdxs)
	}
	if m.logs.offset != 1 {
		t.Fatalf("expected the match as the last visible line, offset %d", m.logs.offset)
	}

	dir := t.TempDir()
	path, err := m.logs.save(dir, time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC))
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if filepath.Base(path) != "20240102_030405.log" {
		t.Fatalf("unexpected name %s", path)
	}
	data, err := os.ReadFile(path)
	if err != nil || !strings.Contains(string(data), "purged 3") {
		t.Fatalf("unexpected saved logs %q %v", data, err)
	}
}

func TestLogPanelFreeze(t *testing.T) {
	var p logPanel
	keys := defaultKeys()
	p.handleKey(runes("f"), keys)
	p.add("held")
	if len(p.logs) != 0 || len(p.frozenBuf) != 1 {
		t.Fatalf("frozen panel must buffer lines")
	}
	p.handleKey(runes("f"), keys)
	if len(p.logs) != 1 || p.frozenBuf != nil {
		t.Fatalf("resuming must flush the buffer")
	}
}
