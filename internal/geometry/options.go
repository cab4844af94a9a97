package geometry

import (
	"errors"
	"math"
)

// LayoutType selects between a single-column list and a multi-column grid.
type LayoutType string

const (
	LayoutList LayoutType = "list"
	LayoutGrid LayoutType = "grid"
)

// DefaultBufferRows is the number of rows rendered beyond the viewport when
// nothing else is configured.
const DefaultBufferRows = 1

var (
	ErrMissingItemHeight = errors.New("item height must be > 0")
	ErrInvalidMaxColumns = errors.New("max columns must be > 0 when set")
)

// Padding is the inset around the rendered content.
type Padding struct {
	Top    float64 `json:"top"`
	Left   float64 `json:"left"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
}

// SizingOptions describe how items are laid out.
// ItemWidth <= 0 means the width is undefined (list mode or auto width).
// MaxColumns == 0 means no column limit.
type SizingOptions struct {
	ItemWidth  float64    `json:"item_width,omitempty"`
	ItemHeight float64    `json:"item_height"`
	BufferRows int        `json:"buffer_rows"`
	MaxColumns int        `json:"max_columns,omitempty"`
	Gap        float64    `json:"gap,omitempty"`
	Padding    Padding    `json:"padding"`
	Layout     LayoutType `json:"layout"`
}

// DefaultSizingOptions returns grid options with one buffer row. ItemHeight
// is left unset on purpose: callers must supply it.
func DefaultSizingOptions() SizingOptions {
	return SizingOptions{
		BufferRows: DefaultBufferRows,
		Layout:     LayoutGrid,
	}
}

// Validate reports configuration errors that must be rejected before the
// first computation.
func (o SizingOptions) Validate() error {
	if !(o.ItemHeight > 0) || math.IsInf(o.ItemHeight, 1) {
		return ErrMissingItemHeight
	}
	if o.MaxColumns < 0 {
		return ErrInvalidMaxColumns
	}
	return nil
}

// HasItemWidth reports whether an explicit item width is configured.
func (o SizingOptions) HasItemWidth() bool {
	return o.ItemWidth > 0 && !math.IsInf(o.ItemWidth, 0)
}

func (o SizingOptions) isList() bool { return o.Layout == LayoutList }

func (o SizingOptions) bufferRows() int {
	if o.BufferRows < 0 {
		return 0
	}
	return o.BufferRows
}

// PaddingFrom normalizes the accepted padding shapes: a single number applied
// to every side, an {X, Y} pair, a full Padding, or a map carrying either
// "x"/"y" or "top"/"left"/"right"/"bottom". Anything non-finite or
// unrecognized yields zero padding.
func PaddingFrom(v any) Padding {
	switch p := v.(type) {
	case float64:
		if finite(p) {
			return Padding{Top: p, Left: p, Right: p, Bottom: p}
		}
	case int:
		f := float64(p)
		return Padding{Top: f, Left: f, Right: f, Bottom: f}
	case Padding:
		if finite(p.Top, p.Left, p.Right, p.Bottom) {
			return p
		}
	case XY:
		if finite(p.X, p.Y) {
			return Padding{Top: p.Y, Bottom: p.Y, Left: p.X, Right: p.X}
		}
	case map[string]float64:
		if x, okX := p["x"]; okX {
			if y, okY := p["y"]; okY && finite(x, y) {
				return Padding{Top: y, Bottom: y, Left: x, Right: x}
			}
		}
		t, okT := p["top"]
		l, okL := p["left"]
		r, okR := p["right"]
		b, okB := p["bottom"]
		if okT && okL && okR && okB && finite(t, l, r, b) {
			return Padding{Top: t, Left: l, Right: r, Bottom: b}
		}
	}
	return Padding{}
}

// XY is a symmetric padding shorthand.
type XY struct {
	X float64
	Y float64
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
