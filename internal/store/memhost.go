package store

import "fmt"

// MemView is the view handle handed out by MemoryHost.
type MemView struct {
	ID        int
	DataIndex int
	Dead      bool
}

// Destroyed implements Destroyable.
func (v *MemView) Destroyed() bool { return v.Dead }

// MemoryHost is a Host that keeps rows and views in maps and counts every
// call. It backs the simulate command and the store tests.
type MemoryHost[T any] struct {
	Rows    map[int]int         // slot → virtual row
	Offsets map[int]float64     // slot → offset
	Views   map[[2]int]*MemView // (slot, column) → view
	Calls   map[string]int
	Before  float64
	After   float64
	Columns int
	Top     float64

	nextID int
}

// NewMemoryHost returns an empty MemoryHost.
func NewMemoryHost[T any]() *MemoryHost[T] {
	return &MemoryHost[T]{
		Rows:    make(map[int]int),
		Offsets: make(map[int]float64),
		Views:   make(map[[2]int]*MemView),
		Calls:   make(map[string]int),
	}
}

func (h *MemoryHost[T]) Render(virtualRow, slot int, offset float64) {
	h.Calls["render"]++
	h.Rows[slot] = virtualRow
	h.Offsets[slot] = offset
}

func (h *MemoryHost[T]) Unrender(slot int) {
	h.Calls["unrender"]++
	delete(h.Rows, slot)
	delete(h.Offsets, slot)
}

func (h *MemoryHost[T]) Shift(slot, virtualRow int, offset float64) {
	h.Calls["shift"]++
	h.Rows[slot] = virtualRow
	h.Offsets[slot] = offset
}

func (h *MemoryHost[T]) RenderItem(slot, column int, _ T, dataIndex int) ViewHandle {
	h.Calls["render-item"]++
	h.nextID++
	v := &MemView{ID: h.nextID, DataIndex: dataIndex}
	h.Views[[2]int{slot, column}] = v
	return v
}

func (h *MemoryHost[T]) UnrenderItem(slot, column int) {
	h.Calls["unrender-item"]++
	if v, ok := h.Views[[2]int{slot, column}]; ok {
		v.Dead = true
	}
	delete(h.Views, [2]int{slot, column})
}

func (h *MemoryHost[T]) UpdateItem(slot, column int, _ T, dataIndex int) {
	h.Calls["update-item"]++
	if v, ok := h.Views[[2]int{slot, column}]; ok {
		v.DataIndex = dataIndex
	}
}

func (h *MemoryHost[T]) SpacerSizes(before, after float64) {
	h.Calls["spacer-sizes"]++
	h.Before, h.After = before, after
}

func (h *MemoryHost[T]) ColumnCount(n int) {
	h.Calls["column-count"]++
	h.Columns = n
}

func (h *MemoryHost[T]) ScrollTo(top float64) {
	h.Calls["scroll-to"]++
	h.Top = top
}

// Indices returns (slot, column) → data index for every live view.
func (h *MemoryHost[T]) Indices() map[[2]int]int {
	out := make(map[[2]int]int, len(h.Views))
	for k, v := range h.Views {
		out[k] = v.DataIndex
	}
	return out
}

func (h *MemoryHost[T]) String() string {
	return fmt.Sprintf("rows=%d views=%d calls=%v", len(h.Rows), len(h.Views), h.Calls)
}

// CachingHost wraps a MemoryHost with the ViewCacher methods.
type CachingHost[T any] struct {
	*MemoryHost[T]
	Detached map[*MemView]struct{}
}

// NewCachingHost returns a host whose views can be detached and reattached.
func NewCachingHost[T any]() *CachingHost[T] {
	return &CachingHost[T]{MemoryHost: NewMemoryHost[T](), Detached: make(map[*MemView]struct{})}
}

func (h *CachingHost[T]) DetachItem(slot, column int) ViewHandle {
	h.Calls["detach-item"]++
	v, ok := h.Views[[2]int{slot, column}]
	if !ok {
		return nil
	}
	delete(h.Views, [2]int{slot, column})
	h.Detached[v] = struct{}{}
	return v
}

func (h *CachingHost[T]) AttachItem(slot, column int, view ViewHandle, _ T, dataIndex int) {
	h.Calls["attach-item"]++
	v := view.(*MemView)
	delete(h.Detached, v)
	v.DataIndex = dataIndex
	h.Views[[2]int{slot, column}] = v
}

func (h *CachingHost[T]) DestroyView(view ViewHandle) {
	h.Calls["destroy-view"]++
	if v, ok := view.(*MemView); ok {
		v.Dead = true
		delete(h.Detached, v)
	}
}
