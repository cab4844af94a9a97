package store

import (
	"maps"
	"slices"

	"rvscroll/internal/command"
	"rvscroll/internal/geometry"
)

// Unlimited disables the bound on the view cache.
const Unlimited = -1

// Options configures a Store.
type Options[T any] struct {
	// TrackBy keys items for the rendered and cached records. Nil keys by
	// index.
	TrackBy TrackBy[T]
	// CacheLimit bounds the number of detached views kept for reuse.
	// Unlimited keeps all of them, 0 turns caching off.
	CacheLimit int
	// Logf receives host contract violations. Nil discards them.
	Logf func(format string, args ...any)
}

// Cell is one item position inside a rendered row. Item is the value the
// view was last rendered or updated with.
type Cell[T any] struct {
	DataIndex   int
	Key         any
	Item        T
	View        ViewHandle
	Placeholder bool
}

// Row is the state of one row slot.
type Row[T any] struct {
	VirtualRow int
	Offset     float64
	Items      map[int]*Cell[T]
}

// State is what the reducer folds commands into.
type State[T any] struct {
	Window     geometry.Window
	Rows       map[int]*Row[T]
	NeedsCheck bool
}

// Store owns the slot → row map, the per-column item views and the records of
// rendered and cached views. It is not safe for concurrent use; the scroller
// drives it from a single goroutine.
type Store[T any] struct {
	host   Host[T]
	cacher ViewCacher[T]

	trackBy    TrackBy[T]
	cacheLimit int
	logf       func(string, ...any)

	items      []T
	state      State[T]
	rendered   ViewRecord[T]
	cached     ViewRecord[T]
	cacheOrder []any
}

// New creates a store that drives host. If host also implements ViewCacher
// and opts.CacheLimit is non-zero, removed item views are kept for reuse.
func New[T any](host Host[T], opts Options[T]) *Store[T] {
	s := &Store[T]{
		host:       host,
		trackBy:    opts.TrackBy,
		cacheLimit: opts.CacheLimit,
		logf:       opts.Logf,
	}
	if s.trackBy == nil {
		s.trackBy = TrackByIndex[T]
	}
	if s.logf == nil {
		s.logf = func(string, ...any) {}
	}
	if c, ok := host.(ViewCacher[T]); ok {
		s.cacher = c
	}
	s.reset()
	return s
}

func (s *Store[T]) reset() {
	s.state = State[T]{Window: geometry.Empty(), Rows: make(map[int]*Row[T])}
	s.rendered = make(ViewRecord[T])
	s.cached = make(ViewRecord[T])
	s.cacheOrder = nil
}

func (s *Store[T]) caching() bool { return s.cacher != nil && s.cacheLimit != 0 }

// SetData replaces the items that data indices refer to.
func (s *Store[T]) SetData(items []T) { s.items = items }

// SetTrackBy swaps the key function. Keys change meaning, so every view is
// destroyed.
func (s *Store[T]) SetTrackBy(fn TrackBy[T]) {
	if fn == nil {
		fn = TrackByIndex[T]
	}
	s.Clear()
	s.trackBy = fn
}

// SetCacheLimit changes the cache bound, evicting views over the new limit.
func (s *Store[T]) SetCacheLimit(n int) {
	s.cacheLimit = n
	if n == 0 {
		s.destroyCached(func(any, ViewInfo[T]) bool { return true })
		return
	}
	s.evict()
}

// State returns the reducer state. Callers must not mutate it.
func (s *Store[T]) State() State[T] { return s.state }

// Rendered returns a copy of the rendered record.
func (s *Store[T]) Rendered() ViewRecord[T] { return maps.Clone(s.rendered) }

// Cached returns a copy of the cached record.
func (s *Store[T]) Cached() ViewRecord[T] { return maps.Clone(s.cached) }

// UpdateWindow records w as the window the rows now reflect and schedules a
// count check.
func (s *Store[T]) UpdateWindow(w geometry.Window) {
	s.state.Window = w
	s.state.NeedsCheck = true
}

// ScrollTarget translates a user command into a scroll offset using the
// current window's row height and column count.
func (s *Store[T]) ScrollTarget(u command.User) float64 {
	w := s.state.Window
	return u.ScrollTop(w.ItemHeight, max(1, w.ActualColumnCount))
}

// ApplyAll applies cmds in order, then reconciles the rendered record.
func (s *Store[T]) ApplyAll(cmds []command.Command) {
	for _, c := range cmds {
		s.Apply(c)
	}
	s.Reconcile()
}

// Reconcile rebuilds the rendered record from the rows and logs track-by
// keys held by more than one cell. Within a plan a key can move from one
// slot to another before the old slot is updated, so duplicates are only
// a contract violation once the whole batch is applied.
func (s *Store[T]) Reconcile() {
	rec := make(ViewRecord[T], len(s.rendered))
	for _, slot := range slices.Sorted(maps.Keys(s.state.Rows)) {
		row := s.state.Rows[slot]
		for _, col := range slices.Sorted(maps.Keys(row.Items)) {
			cell := row.Items[col]
			if prev, dup := rec[cell.Key]; dup {
				s.logf("store: duplicate track-by key %v at index %d and %d", cell.Key, prev.ItemIndex, cell.DataIndex)
				continue
			}
			rec[cell.Key] = s.info(cell)
		}
	}
	s.rendered = rec
}

func (s *Store[T]) info(cell *Cell[T]) ViewInfo[T] {
	return ViewInfo[T]{View: cell.View, Item: cell.Item, ItemIndex: cell.DataIndex, Placeholder: cell.Placeholder, cell: cell}
}

// unrecord drops the rendered entry for cell's key if cell still owns it.
func (s *Store[T]) unrecord(cell *Cell[T]) {
	if info, ok := s.rendered[cell.Key]; ok && info.cell == cell {
		delete(s.rendered, cell.Key)
	}
}

// Apply is one reducer step.
func (s *Store[T]) Apply(c command.Command) {
	switch c.Kind {
	case command.NoOp:
	case command.CreateRow:
		s.createRow(c)
	case command.RemoveRow:
		s.removeRow(c)
	case command.ShiftRow:
		s.shiftRow(c)
	case command.CreateItem:
		s.createItem(c, false)
	case command.RemoveItem:
		s.removeItem(c)
	case command.UpdateItem:
		s.updateItem(c)
	default:
		s.logf("store: unknown command kind %d", int(c.Kind))
	}
}

// Reserve records a CreateItem without calling the host so the cell counts
// as occupied until Apply renders it.
func (s *Store[T]) Reserve(c command.Command) {
	if c.Kind != command.CreateItem {
		s.logf("store: reserve expects %s, got %s", command.CreateItem, c.Kind)
		return
	}
	s.createItem(c, true)
}

func (s *Store[T]) createRow(c command.Command) {
	if _, ok := s.state.Rows[c.Slot]; ok {
		s.logf("store: %s for slot %d which is already rendered", c.Kind, c.Slot)
		return
	}
	s.state.Rows[c.Slot] = &Row[T]{VirtualRow: c.VirtualRow, Offset: c.Offset, Items: make(map[int]*Cell[T])}
	s.host.Render(c.VirtualRow, c.Slot, c.Offset)
}

func (s *Store[T]) removeRow(c command.Command) {
	row, ok := s.state.Rows[c.Slot]
	if !ok {
		s.logf("store: %s for unknown slot %d", c.Kind, c.Slot)
		return
	}
	for _, col := range slices.Sorted(maps.Keys(row.Items)) {
		s.logf("store: slot %d removed with column %d still rendered", c.Slot, col)
		s.dropCell(c.Slot, col, row.Items[col])
		delete(row.Items, col)
	}
	delete(s.state.Rows, c.Slot)
	s.host.Unrender(c.Slot)
}

func (s *Store[T]) shiftRow(c command.Command) {
	row, ok := s.state.Rows[c.Slot]
	if !ok {
		s.logf("store: %s for unknown slot %d", c.Kind, c.Slot)
		return
	}
	row.VirtualRow = c.VirtualRow
	row.Offset = c.Offset
	s.host.Shift(c.Slot, c.VirtualRow, c.Offset)
}

func (s *Store[T]) item(idx int) (T, bool) {
	var zero T
	if idx < 0 || idx >= len(s.items) {
		return zero, false
	}
	return s.items[idx], true
}

func (s *Store[T]) createItem(c command.Command, placeholder bool) {
	row, ok := s.state.Rows[c.Slot]
	if !ok {
		s.logf("store: %s for unknown slot %d", c.Kind, c.Slot)
		return
	}
	item, ok := s.item(c.DataIndex)
	if !ok {
		s.logf("store: %s for index %d outside %d items", c.Kind, c.DataIndex, len(s.items))
		return
	}
	if cell, ok := row.Items[c.Column]; ok {
		if !cell.Placeholder || placeholder {
			s.logf("store: %s for slot %d column %d which is occupied", c.Kind, c.Slot, c.Column)
			return
		}
		// Filling a reservation.
		s.unrecord(cell)
	}

	key := s.trackBy(c.DataIndex, item)
	cell := &Cell[T]{DataIndex: c.DataIndex, Key: key, Item: item, Placeholder: placeholder}
	row.Items[c.Column] = cell

	if !placeholder {
		cell.View = s.materialize(c.Slot, c.Column, key, item, c.DataIndex)
	}
	s.rendered[key] = s.info(cell)
}

// materialize reuses a cached view for key when one is alive, otherwise asks
// the host for a new one.
func (s *Store[T]) materialize(slot, column int, key any, item T, idx int) ViewHandle {
	if info, ok := s.cached[key]; ok && s.cacher != nil {
		s.uncache(key)
		if !isDestroyed(info.View) {
			s.cacher.AttachItem(slot, column, info.View, item, idx)
			return info.View
		}
	}
	v := s.host.RenderItem(slot, column, item, idx)
	if v == nil {
		s.logf("store: host returned no view for slot %d column %d", slot, column)
	}
	return v
}

func (s *Store[T]) removeItem(c command.Command) {
	row, ok := s.state.Rows[c.Slot]
	if !ok {
		s.logf("store: %s for unknown slot %d", c.Kind, c.Slot)
		return
	}
	cell, ok := row.Items[c.Column]
	if !ok {
		s.logf("store: %s for empty slot %d column %d", c.Kind, c.Slot, c.Column)
		return
	}
	s.dropCell(c.Slot, c.Column, cell)
	delete(row.Items, c.Column)
}

func (s *Store[T]) dropCell(slot, column int, cell *Cell[T]) {
	s.unrecord(cell)
	if cell.Placeholder {
		return
	}
	if !s.caching() {
		s.host.UnrenderItem(slot, column)
		return
	}
	v := s.cacher.DetachItem(slot, column)
	if v == nil {
		v = cell.View
	}
	if old, ok := s.cached[cell.Key]; ok {
		s.uncache(cell.Key)
		if old.View != v {
			s.cacher.DestroyView(old.View)
		}
	}
	s.cached[cell.Key] = ViewInfo[T]{View: v, Item: cell.Item, ItemIndex: cell.DataIndex}
	s.cacheOrder = append(s.cacheOrder, cell.Key)
	s.evict()
}

func (s *Store[T]) updateItem(c command.Command) {
	row, ok := s.state.Rows[c.Slot]
	if !ok {
		s.logf("store: %s for unknown slot %d", c.Kind, c.Slot)
		return
	}
	cell, ok := row.Items[c.Column]
	if !ok {
		s.logf("store: %s for empty slot %d column %d", c.Kind, c.Slot, c.Column)
		return
	}
	item, ok := s.item(c.DataIndex)
	if !ok {
		s.logf("store: %s for index %d outside %d items", c.Kind, c.DataIndex, len(s.items))
		return
	}
	s.unrecord(cell)
	cell.DataIndex = c.DataIndex
	cell.Key = s.trackBy(c.DataIndex, item)
	cell.Item = item
	s.rendered[cell.Key] = s.info(cell)
	if !cell.Placeholder {
		s.host.UpdateItem(c.Slot, c.Column, item, c.DataIndex)
	}
}

func (s *Store[T]) uncache(key any) {
	delete(s.cached, key)
	if i := slices.Index(s.cacheOrder, key); i >= 0 {
		s.cacheOrder = slices.Delete(s.cacheOrder, i, i+1)
	}
}

func (s *Store[T]) evict() {
	if s.cacheLimit < 0 {
		return
	}
	for len(s.cached) > s.cacheLimit && len(s.cacheOrder) > 0 {
		key := s.cacheOrder[0]
		s.cacheOrder = s.cacheOrder[1:]
		if info, ok := s.cached[key]; ok {
			delete(s.cached, key)
			s.cacher.DestroyView(info.View)
		}
	}
}

func (s *Store[T]) destroyCached(drop func(key any, info ViewInfo[T]) bool) int {
	n := 0
	for _, key := range slices.Clone(s.cacheOrder) {
		info, ok := s.cached[key]
		if !ok || !drop(key, info) {
			continue
		}
		s.uncache(key)
		if s.cacher != nil {
			s.cacher.DestroyView(info.View)
		}
		n++
	}
	return n
}

// PurgeCache destroys cached views whose key no longer appears in items or
// whose handle reports being destroyed. It returns the number destroyed.
func (s *Store[T]) PurgeCache(items []T) int {
	if len(s.cached) == 0 {
		return 0
	}
	keep := make(map[any]struct{}, len(items))
	for i, it := range items {
		keep[s.trackBy(i, it)] = struct{}{}
	}
	return s.destroyCached(func(key any, info ViewInfo[T]) bool {
		_, ok := keep[key]
		return !ok || isDestroyed(info.View)
	})
}

// Clear destroys every rendered and cached view and forgets all rows. The
// next plan must be computed against geometry.Empty().
func (s *Store[T]) Clear() {
	for _, slot := range slices.Sorted(maps.Keys(s.state.Rows)) {
		row := s.state.Rows[slot]
		for _, col := range slices.Sorted(maps.Keys(row.Items)) {
			if !row.Items[col].Placeholder {
				s.host.UnrenderItem(slot, col)
			}
		}
		s.host.Unrender(slot)
	}
	s.destroyCached(func(any, ViewInfo[T]) bool { return true })
	s.reset()
}

// Verify compares the number of rendered cells with what the current window
// requires and logs a mismatch. It clears NeedsCheck.
func (s *Store[T]) Verify() bool {
	s.state.NeedsCheck = false
	w := s.state.Window
	want := 0
	have := 0
	for _, row := range s.state.Rows {
		for c := 0; c < w.ActualColumnCount; c++ {
			if row.VirtualRow*w.ActualColumnCount+c < w.VirtualItemCount {
				want++
			}
		}
		for _, cell := range row.Items {
			if !cell.Placeholder {
				have++
			}
		}
	}
	if want != have {
		s.logf("store: host has %d item views, window needs %d", have, want)
		return false
	}
	return true
}

// CountPlaceholders returns the number of reserved cells.
func (s *Store[T]) CountPlaceholders() int {
	n := 0
	for _, row := range s.state.Rows {
		for _, cell := range row.Items {
			if cell.Placeholder {
				n++
			}
		}
	}
	return n
}
