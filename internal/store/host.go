package store

// ViewHandle is whatever the host uses to represent a rendered item. The
// store never looks inside it.
type ViewHandle any

// Destroyable is implemented by handles that can report being torn down
// outside the store's control.
type Destroyable interface {
	Destroyed() bool
}

// Host is the renderer collaborator. All calls come from the goroutine that
// drives the store.
type Host[T any] interface {
	// Render creates the row view for slot positioned at offset.
	Render(virtualRow, slot int, offset float64)
	// Unrender destroys the row view of slot.
	Unrender(slot int)
	// Shift relabels the row view of slot to virtualRow and moves it.
	Shift(slot, virtualRow int, offset float64)

	RenderItem(slot, column int, item T, dataIndex int) ViewHandle
	UnrenderItem(slot, column int)
	UpdateItem(slot, column int, item T, dataIndex int)

	// SpacerSizes pads above and below the rendered rows.
	SpacerSizes(before, after float64)
	// ColumnCount announces the number of columns per row.
	ColumnCount(n int)
	// ScrollTo asks the host to move its scroll offset.
	ScrollTo(top float64)
}

// ViewCacher is implemented by hosts that can keep item views alive while
// detached from a row so they can be reused later.
type ViewCacher[T any] interface {
	// DetachItem takes the view out of the row without destroying it.
	DetachItem(slot, column int) ViewHandle
	// AttachItem puts a previously detached view back into a row.
	AttachItem(slot, column int, view ViewHandle, item T, dataIndex int)
	// DestroyView destroys a detached view.
	DestroyView(view ViewHandle)
}
