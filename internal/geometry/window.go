package geometry

import "math"

// Window is the virtual/actual geometry snapshot at one point in time.
// Windows are replaced wholesale, never mutated.
type Window struct {
	DataTimestamp   int64   `json:"data_timestamp"`
	ContainerWidth  float64 `json:"container_width"`
	ContainerHeight float64 `json:"container_height"`
	ItemWidth       float64 `json:"item_width,omitempty"`
	ItemHeight      float64 `json:"item_height"`

	VirtualItemCount int     `json:"virtual_item_count"`
	VirtualRowCount  int     `json:"virtual_row_count"`
	VirtualHeight    float64 `json:"virtual_height"`
	BufferRows       int     `json:"buffer_rows"`

	ActualColumnCount int     `json:"actual_column_count"`
	ActualRowCount    int     `json:"actual_row_count"`
	ActualHeight      float64 `json:"actual_height"`
	ActualItemCount   int     `json:"actual_item_count"`

	VisibleStartRow int `json:"visible_start_row"`
	VisibleEndRow   int `json:"visible_end_row"`

	ScrollTop        float64 `json:"scroll_top"`
	ScrollPercentage float64 `json:"scroll_percentage"`
}

// Empty is the window that precedes the first real one: nothing visible.
func Empty() Window {
	return Window{VisibleStartRow: -1, VisibleEndRow: -1}
}

// ComputeWindow derives the window for scrollTop given the measurement, the
// number of items and the sizing options.
func ComputeWindow(scrollTop float64, m Measurement, itemCount int, dataTimestamp int64, opts SizingOptions) Window {
	if math.IsNaN(scrollTop) || math.IsInf(scrollTop, 0) {
		scrollTop = 0
	}
	if itemCount < 0 {
		itemCount = 0
	}

	requestedColumns := 1
	if !opts.isList() {
		requestedColumns = m.PossibleColumns
		if opts.MaxColumns > 0 && requestedColumns > opts.MaxColumns {
			requestedColumns = opts.MaxColumns
		}
	}

	actualColumns := itemCount
	if requestedColumns < actualColumns {
		actualColumns = requestedColumns
	}
	if actualColumns < 1 {
		actualColumns = 1
	}

	virtualRows := (itemCount + actualColumns - 1) / actualColumns
	virtualHeight := float64(virtualRows) * m.ItemHeight

	bufferRows := opts.bufferRows()
	requestedRows := m.PossibleRows + bufferRows
	actualRows := 0
	if actualColumns > 0 {
		actualRows = requestedRows
		if virtualRows < actualRows {
			actualRows = virtualRows
		}
	}
	if !(m.ItemHeight > 0) {
		actualRows = 0
	}
	actualHeight := float64(actualRows) * m.ItemHeight

	visibleEnd := -1
	if actualRows > 0 {
		end := math.Floor((scrollTop+actualHeight)/m.ItemHeight) - 1
		visibleEnd = int(clamp(0, float64(virtualRows-1), end))
	}
	visibleStart := -1
	if visibleEnd != -1 {
		visibleStart = visibleEnd - actualRows + 1
		if visibleStart < 0 {
			visibleStart = 0
		}
	}

	actualItems := actualRows * actualColumns
	if itemCount < actualItems {
		actualItems = itemCount
	}

	return Window{
		DataTimestamp:     dataTimestamp,
		ContainerWidth:    m.ContainerWidth,
		ContainerHeight:   m.ContainerHeight,
		ItemWidth:         m.ItemWidth,
		ItemHeight:        m.ItemHeight,
		VirtualItemCount:  itemCount,
		VirtualRowCount:   virtualRows,
		VirtualHeight:     virtualHeight,
		BufferRows:        bufferRows,
		ActualColumnCount: actualColumns,
		ActualRowCount:    actualRows,
		ActualHeight:      actualHeight,
		ActualItemCount:   actualItems,
		VisibleStartRow:   visibleStart,
		VisibleEndRow:     visibleEnd,
		ScrollTop:         scrollTop,
		ScrollPercentage:  scrollPercentage(scrollTop, virtualHeight, m.ContainerHeight),
	}
}

func scrollPercentage(scrollTop, virtualHeight, containerHeight float64) float64 {
	span := virtualHeight - containerHeight
	if span <= 0 {
		return 0
	}
	return clamp(0, 100, scrollTop/span)
}

// SameRendering reports whether a and b would render identically. Only the
// fields that drive the diff are compared.
func SameRendering(a, b Window) bool {
	return a.VisibleStartRow == b.VisibleStartRow &&
		a.VisibleEndRow == b.VisibleEndRow &&
		a.ActualColumnCount == b.ActualColumnCount &&
		a.VirtualItemCount == b.VirtualItemCount &&
		a.DataTimestamp == b.DataTimestamp
}

// MaxIndex is the highest data index the window's visible rows could hold.
// It exceeds VirtualItemCount-1 when the trailing row is partial.
func MaxIndex(w Window) int {
	return w.VisibleEndRow*w.ActualColumnCount + w.ActualColumnCount - 1
}

// VisibleRows is the number of rows between VisibleStartRow and VisibleEndRow.
func (w Window) VisibleRows() int {
	if w.VisibleStartRow < 0 || w.VisibleEndRow < w.VisibleStartRow {
		return 0
	}
	return w.VisibleEndRow - w.VisibleStartRow + 1
}

// RowOffset is the pixel offset of virtual row r.
func (w Window) RowOffset(r int) float64 {
	return float64(r) * w.ItemHeight
}

// Spacers returns the space before and after the rendered rows so the total
// scrollable height matches VirtualHeight.
func (w Window) Spacers() (before, after float64) {
	if w.VisibleStartRow < 0 {
		return 0, w.VirtualHeight
	}
	before = w.RowOffset(w.VisibleStartRow)
	after = w.VirtualHeight - before - float64(w.VisibleRows())*w.ItemHeight
	if after < 0 {
		after = 0
	}
	return before, after
}

// DataRange returns the first and last data index rendered by w, or -1, -1.
func (w Window) DataRange() (first, last int) {
	if w.VisibleStartRow < 0 || w.VirtualItemCount == 0 {
		return -1, -1
	}
	first = w.VisibleStartRow * w.ActualColumnCount
	last = clampInt(first, w.VirtualItemCount-1, MaxIndex(w))
	return first, last
}
