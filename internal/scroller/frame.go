package scroller

import "rvscroll/internal/geometry"

// Frame is the layout a host needs besides the row commands.
type Frame struct {
	VirtualHeight float64
	MarginTop     float64
	MarginBottom  float64
	// ContentWidth is ItemWidth*Columns, or 0 for full width when no item
	// width is configured.
	ContentWidth float64
	ItemWidth    float64
	Columns      int
	Gap          float64
}

// FrameObserver is implemented by hosts that want the Frame whenever it
// changes.
type FrameObserver interface {
	Frame(Frame)
}

func frameFor(w geometry.Window, o geometry.SizingOptions, itemWidth float64) Frame {
	f := Frame{
		VirtualHeight: w.VirtualHeight,
		MarginTop:     o.Padding.Top,
		MarginBottom:  max(0, o.Padding.Bottom-o.Gap),
		Columns:       w.ActualColumnCount,
		Gap:           o.Gap,
	}
	if o.HasItemWidth() {
		if itemWidth <= 0 {
			itemWidth = o.ItemWidth
		}
		f.ItemWidth = itemWidth
		f.ContentWidth = itemWidth * float64(max(1, w.ActualColumnCount))
	}
	return f
}
