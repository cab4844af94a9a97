// Package itemwidth derives the effective per-item width in grid stretch
// mode.
package itemwidth

import "math"

// DefaultInset is the horizontal allowance for a scrollbar and borders that is
// taken off the container before stretched items are laid out.
const DefaultInset = 20

// Resolver holds the latest inputs and the last emitted width. Every setter
// re-evaluates the rule and reports the new width when it changed. The zero
// value is not usable; call New.
type Resolver struct {
	Inset float64

	stretch        bool
	minWidth       float64
	grid           bool
	columns        int
	containerWidth float64

	last float64
}

// New returns a resolver with one column per row and the default inset.
func New() *Resolver {
	return &Resolver{Inset: DefaultInset, columns: 1}
}

// Width is the last emitted width, 0 before the first emission.
func (r *Resolver) Width() float64 { return r.last }

// MinWidth is the configured item width.
func (r *Resolver) MinWidth() float64 { return r.minWidth }

func (r *Resolver) SetStretch(v bool) (float64, bool) {
	r.stretch = v
	return r.eval()
}

// SetMinWidth sets the configured item width. Repeating the current value
// does not re-evaluate.
func (r *Resolver) SetMinWidth(v float64) (float64, bool) {
	if v == r.minWidth {
		return r.last, false
	}
	r.minWidth = v
	return r.eval()
}

func (r *Resolver) SetGrid(v bool) (float64, bool) {
	r.grid = v
	return r.eval()
}

func (r *Resolver) SetColumns(n int) (float64, bool) {
	r.columns = n
	return r.eval()
}

// SetContainerWidth is ignored while stretch is off; the width recorded last
// time stretch was on stays in effect.
func (r *Resolver) SetContainerWidth(w float64) (float64, bool) {
	if !r.stretch {
		return r.last, false
	}
	r.containerWidth = w
	return r.eval()
}

func (r *Resolver) eval() (float64, bool) {
	if !(r.minWidth > 0) {
		return r.last, false
	}
	w := r.minWidth
	if r.columns > 0 && r.stretch && r.grid {
		w = math.Floor((r.containerWidth - r.Inset) / float64(r.columns))
	}
	if w == r.last {
		return r.last, false
	}
	r.last = w
	return w, true
}
