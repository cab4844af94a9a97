package tui

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"rvscroll/internal/command"
	"rvscroll/internal/scroller"
	"rvscroll/internal/store"
	"rvscroll/internal/tui/state"
)

// cardView is the view handle for one rendered card.
type cardView struct {
	card  state.Card
	index int
	dead  bool
}

func (v *cardView) Destroyed() bool { return v.dead }

type rowView struct {
	virtualRow int
	offset     float64
	items      map[int]*cardView
}

// RowSnap is a copy of one rendered row handed to the model.
type RowSnap struct {
	VirtualRow int
	Offset     float64
	Cards      map[int]state.Card // column → card
	Indices    map[int]int        // column → data index
}

// frameMsg is sent after every completed render.
type frameMsg struct {
	Rows    []RowSnap // sorted by virtual row
	Before  float64
	After   float64
	Frame   scroller.Frame
	Columns int
	Counts  map[command.Kind]int
	Reused  int
	Cached  int
	Text    string
}

// scrollToMsg is sent when the scroller moves the viewport itself.
type scrollToMsg float64

// Host renders cards into terminal rows. Calls arrive on the scroller
// goroutine; the model only ever sees frameMsg copies.
type Host struct {
	mu       sync.Mutex
	rows     map[int]*rowView
	detached map[*cardView]struct{}
	frame    scroller.Frame
	columns  int
	counts   map[command.Kind]int
	reused   int
	send     func(tea.Msg)
}

var (
	_ store.Host[state.Card]       = (*Host)(nil)
	_ store.ViewCacher[state.Card] = (*Host)(nil)
	_ scroller.FrameObserver       = (*Host)(nil)
)

// NewHost returns a host that delivers messages through send. A nil send
// drops them.
func NewHost(send func(tea.Msg)) *Host {
	h := &Host{
		rows:     make(map[int]*rowView),
		detached: make(map[*cardView]struct{}),
		counts:   make(map[command.Kind]int),
		send:     send,
	}
	return h
}

// attach sets the message sink once the program exists.
func (h *Host) attach(send func(tea.Msg)) {
	h.mu.Lock()
	h.send = send
	h.mu.Unlock()
}

func (h *Host) emit(msg tea.Msg) {
	h.mu.Lock()
	send := h.send
	h.mu.Unlock()
	if send != nil {
		send(msg)
	}
}

func (h *Host) Render(virtualRow, slot int, offset float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.counts[command.CreateRow]++
	h.rows[slot] = &rowView{virtualRow: virtualRow, offset: offset, items: make(map[int]*cardView)}
}

func (h *Host) Unrender(slot int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.counts[command.RemoveRow]++
	if r, ok := h.rows[slot]; ok {
		for _, v := range r.items {
			v.dead = true
		}
	}
	delete(h.rows, slot)
}

func (h *Host) Shift(slot, virtualRow int, offset float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.counts[command.ShiftRow]++
	if r, ok := h.rows[slot]; ok {
		r.virtualRow, r.offset = virtualRow, offset
	}
}

func (h *Host) RenderItem(slot, column int, item state.Card, dataIndex int) store.ViewHandle {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.counts[command.CreateItem]++
	r, ok := h.rows[slot]
	if !ok {
		return nil
	}
	v := &cardView{card: item, index: dataIndex}
	r.items[column] = v
	return v
}

func (h *Host) UnrenderItem(slot, column int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.counts[command.RemoveItem]++
	if r, ok := h.rows[slot]; ok {
		if v, ok := r.items[column]; ok {
			v.dead = true
		}
		delete(r.items, column)
	}
}

func (h *Host) UpdateItem(slot, column int, item state.Card, dataIndex int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.counts[command.UpdateItem]++
	if r, ok := h.rows[slot]; ok {
		if v, ok := r.items[column]; ok {
			v.card, v.index = item, dataIndex
		}
	}
}

func (h *Host) DetachItem(slot, column int) store.ViewHandle {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.counts[command.RemoveItem]++
	r, ok := h.rows[slot]
	if !ok {
		return nil
	}
	v, ok := r.items[column]
	if !ok {
		return nil
	}
	delete(r.items, column)
	h.detached[v] = struct{}{}
	return v
}

func (h *Host) AttachItem(slot, column int, view store.ViewHandle, item state.Card, dataIndex int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.counts[command.CreateItem]++
	h.reused++
	v, ok := view.(*cardView)
	r, exists := h.rows[slot]
	if !ok || !exists {
		return
	}
	delete(h.detached, v)
	v.card, v.index = item, dataIndex
	r.items[column] = v
}

func (h *Host) DestroyView(view store.ViewHandle) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if v, ok := view.(*cardView); ok {
		v.dead = true
		delete(h.detached, v)
	}
}

func (h *Host) ColumnCount(n int) {
	h.mu.Lock()
	h.columns = n
	h.mu.Unlock()
}

func (h *Host) Frame(f scroller.Frame) {
	h.mu.Lock()
	h.frame = f
	h.mu.Unlock()
}

func (h *Host) ScrollTo(top float64) { h.emit(scrollToMsg(top)) }

// SpacerSizes closes a render: the rows are copied into a frameMsg and the
// per-render counters reset.
func (h *Host) SpacerSizes(before, after float64) {
	h.emit(h.snapshot(before, after))
}

func (h *Host) snapshot(before, after float64) frameMsg {
	h.mu.Lock()
	defer h.mu.Unlock()
	msg := frameMsg{
		Before:  before,
		After:   after,
		Frame:   h.frame,
		Columns: h.columns,
		Counts:  h.counts,
		Reused:  h.reused,
		Cached:  len(h.detached),
	}
	h.counts = make(map[command.Kind]int)
	h.reused = 0
	for _, r := range h.rows {
		rs := RowSnap{
			VirtualRow: r.virtualRow,
			Offset:     r.offset,
			Cards:      make(map[int]state.Card, len(r.items)),
			Indices:    make(map[int]int, len(r.items)),
		}
		for col, v := range r.items {
			rs.Cards[col] = v.card
			rs.Indices[col] = v.index
		}
		msg.Rows = append(msg.Rows, rs)
	}
	sort.Slice(msg.Rows, func(i, j int) bool { return msg.Rows[i].VirtualRow < msg.Rows[j].VirtualRow })
	msg.Text = rowsText(msg.Rows)
	return msg
}

// rowsText lists rendered rows one per line, e.g. "row 5 @15 [15 16 17]".
func rowsText(rows []RowSnap) string {
	var b strings.Builder
	for _, r := range rows {
		cols := make([]int, 0, len(r.Indices))
		for c := range r.Indices {
			cols = append(cols, c)
		}
		sort.Ints(cols)
		idx := make([]string, len(cols))
		for i, c := range cols {
			idx[i] = fmt.Sprint(r.Indices[c])
		}
		fmt.Fprintf(&b, "row %d @%g [%s]\n", r.VirtualRow, r.Offset, strings.Join(idx, " "))
	}
	return b.String()
}
