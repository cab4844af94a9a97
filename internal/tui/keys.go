package tui

import (
	"github.com/charmbracelet/bubbles/key"

	help "rvscroll/internal/tui/widgets/helpoverlay"
)

type keyMap struct {
	Up, Down, Left, Right   key.Binding
	PageUp, PageDown        key.Binding
	Home, End               key.Binding
	LineUp, LineDown        key.Binding
	Reveal                  key.Binding
	Layout, Stretch         key.Binding
	Prepend, Delete, Append key.Binding
	Diff, Logs, Inspect     key.Binding
	View                    key.Binding
	Copy, CopyTrace         key.Binding
	Search, Next, Prev      key.Binding
	Save, Freeze, Wrap      key.Binding
	Help, Quit              key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "focus up")),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "focus down")),
		Left:      key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "focus left")),
		Right:     key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "focus right")),
		PageUp:    key.NewBinding(key.WithKeys("pgup"), key.WithHelp("PgUp", "page up")),
		PageDown:  key.NewBinding(key.WithKeys("pgdown", " "), key.WithHelp("PgDn/space", "page down")),
		Home:      key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("Home/g", "first item")),
		End:       key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("End/G", "last item")),
		LineUp:    key.NewBinding(key.WithKeys("ctrl+y"), key.WithHelp("ctrl+y", "scroll up one line")),
		LineDown:  key.NewBinding(key.WithKeys("ctrl+e"), key.WithHelp("ctrl+e", "scroll down one line")),
		Reveal:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "scroll focused item to top")),
		Layout:    key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "toggle list/grid")),
		Stretch:   key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "toggle stretch")),
		Prepend:   key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "prepend a card")),
		Delete:    key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "delete focused card")),
		Append:    key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "append 100 cards")),
		Diff:      key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "rendered rows diff")),
		Logs:      key.NewBinding(key.WithKeys("L"), key.WithHelp("L", "log panel")),
		Inspect:   key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "inspect focused card")),
		View:      key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "unified/side-by-side")),
		Copy:      key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "copy focused card")),
		CopyTrace: key.NewBinding(key.WithKeys("C"), key.WithHelp("C", "copy rendered rows")),
		Search:    key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search logs")),
		Next:      key.NewBinding(key.WithKeys("n"), key.WithHelp("n/N", "next/prev match")),
		Prev:      key.NewBinding(key.WithKeys("N")),
		Save:      key.NewBinding(key.WithKeys("S"), key.WithHelp("S", "save logs")),
		Freeze:    key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "freeze logs")),
		Wrap:      key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "wrap logs")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) sections() []help.Section {
	return []help.Section{
		{Title: "Navigation", Keys: []key.Binding{k.Up, k.Down, k.Left, k.Right, k.PageUp, k.PageDown, k.Home, k.End, k.LineUp, k.LineDown, k.Reveal}},
		{Title: "Layout", Keys: []key.Binding{k.Layout, k.Stretch}},
		{Title: "Data", Keys: []key.Binding{k.Prepend, k.Delete, k.Append}},
		{Title: "Panels", Keys: []key.Binding{k.Diff, k.Logs, k.Inspect, k.View, k.Copy, k.CopyTrace}},
		{Title: "Logs", Keys: []key.Binding{k.Search, k.Next, k.Save, k.Freeze, k.Wrap}},
		{Title: "General", Keys: []key.Binding{k.Help, k.Quit}},
	}
}
