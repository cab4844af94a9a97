package geometry

import "math"

// Rect is the size of the scroll container.
type Rect struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Measurement is how many rows and columns fit into the container.
// PossibleColumns == 0 means the layout is not constrained by item width.
type Measurement struct {
	ContainerWidth  float64 `json:"container_width"`
	ContainerHeight float64 `json:"container_height"`
	ItemWidth       float64 `json:"item_width,omitempty"`
	ItemHeight      float64 `json:"item_height"`
	PossibleRows    int     `json:"possible_rows"`
	PossibleColumns int     `json:"possible_columns"`
	PossibleItems   int     `json:"possible_items"`
}

// Measure derives the row and column capacity of rect for opts.
func Measure(rect Rect, opts SizingOptions) Measurement {
	m := Measurement{
		ContainerWidth:  rect.Width,
		ContainerHeight: rect.Height,
		ItemHeight:      opts.ItemHeight,
	}
	if opts.ItemHeight > 0 {
		m.PossibleRows = ceilDiv(rect.Height, opts.ItemHeight)
	}
	if opts.HasItemWidth() {
		m.ItemWidth = opts.ItemWidth
		m.PossibleColumns = floorDiv(rect.Width, opts.ItemWidth)
	}
	m.PossibleItems = m.PossibleRows * m.PossibleColumns
	return m
}

func ceilDiv(a, b float64) int {
	v := math.Ceil(a / b)
	if math.IsNaN(v) || v <= 0 {
		return 0
	}
	if v > math.MaxInt32 {
		return math.MaxInt32
	}
	return int(v)
}

func floorDiv(a, b float64) int {
	v := math.Floor(a / b)
	if math.IsNaN(v) || v <= 0 {
		return 0
	}
	if v > math.MaxInt32 {
		return math.MaxInt32
	}
	return int(v)
}

func clamp(lo, hi, v float64) float64 {
	return math.Min(hi, math.Max(lo, v))
}

func clampInt(lo, hi, v int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
