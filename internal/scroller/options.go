package scroller

import (
	"time"

	"rvscroll/internal/config"
	"rvscroll/internal/geometry"
	"rvscroll/internal/itemwidth"
)

const (
	DefaultScrollDebounce = 50 * time.Millisecond
	DefaultResizeDebounce = 20 * time.Millisecond

	// AutoScrollGrace is how long after an automatic scroll the last focused
	// item survives leaving the visible range.
	AutoScrollGrace = 200 * time.Millisecond
	// ResizeSettle is the pause between the render that followed a column
	// change and the corrective scroll.
	ResizeSettle = 20 * time.Millisecond
)

// Options configures a Scroller.
type Options struct {
	Sizing geometry.SizingOptions

	ScrollDebounce time.Duration
	ResizeDebounce time.Duration

	// AsyncRendering defers the item creations of each plan to the next tick.
	AsyncRendering bool
	// ViewCache bounds detached views kept for reuse: -1 unlimited, 0 off.
	ViewCache int
	// AutoScrollOnResize brings the last focused item back into view after
	// the column count changes.
	AutoScrollOnResize bool

	Stretch      bool
	StretchInset float64

	Logf func(format string, args ...any)
}

// DefaultOptions uses the given sizing with the default tunables.
func DefaultOptions(sizing geometry.SizingOptions) Options {
	return Options{
		Sizing:         sizing,
		ScrollDebounce: DefaultScrollDebounce,
		ResizeDebounce: DefaultResizeDebounce,
		StretchInset:   itemwidth.DefaultInset,
	}
}

// FromConfig maps a loaded config file onto scroller options.
func FromConfig(c *config.Config) Options {
	return Options{
		Sizing:             c.Sizing,
		ScrollDebounce:     c.ScrollDebounce.D(),
		ResizeDebounce:     c.ResizeDebounce.D(),
		AsyncRendering:     c.AsyncRendering,
		ViewCache:          c.ViewCache,
		AutoScrollOnResize: c.AutoScrollOnResize,
		Stretch:            c.Stretch,
		StretchInset:       c.StretchInset,
	}
}
