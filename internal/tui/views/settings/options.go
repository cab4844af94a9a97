package settings

import (
	"fmt"
	"slices"
	"time"

	"rvscroll/internal/config"
	"rvscroll/internal/geometry"
)

// Field indexes the lines returned by RenderOptions.
type Field int

const (
	Layout Field = iota
	ItemWidth
	ItemHeight
	MaxColumns
	BufferRows
	Stretch
	Async
	ViewCache
	AutoScroll
	ScrollDebounce
	ResizeDebounce
	numFields
)

// Count is the number of editable fields.
const Count = int(numFields)

var cacheSteps = []int{-1, 0, 16, 64, 256}

// RenderOptions returns one line per scroller setting a user can change.
func RenderOptions(c *config.Config) []string {
	cache := "off"
	switch {
	case c.ViewCache < 0:
		cache = "unlimited"
	case c.ViewCache > 0:
		cache = fmt.Sprintf("%d views", c.ViewCache)
	}
	return []string{
		Layout:         fmt.Sprintf("Layout: %s", c.Sizing.Layout),
		ItemWidth:      fmt.Sprintf("Item width: %g", c.Sizing.ItemWidth),
		ItemHeight:     fmt.Sprintf("Item height: %g", c.Sizing.ItemHeight),
		MaxColumns:     fmt.Sprintf("Max columns: %d", c.Sizing.MaxColumns),
		BufferRows:     fmt.Sprintf("Buffer rows: %d", c.Sizing.BufferRows),
		Stretch:        fmt.Sprintf("Stretch: %s", onOff(c.Stretch)),
		Async:          fmt.Sprintf("Async rendering: %s", onOff(c.AsyncRendering)),
		ViewCache:      fmt.Sprintf("View cache: %s", cache),
		AutoScroll:     fmt.Sprintf("Auto-scroll on resize: %s", onOff(c.AutoScrollOnResize)),
		ScrollDebounce: fmt.Sprintf("Scroll debounce: %s", c.ScrollDebounce.D()),
		ResizeDebounce: fmt.Sprintf("Resize debounce: %s", c.ResizeDebounce.D()),
	}
}

// Adjust changes field f by one step in the direction of delta. Toggles
// ignore the direction.
func Adjust(c *config.Config, f Field, delta int) {
	step := 1
	if delta < 0 {
		step = -1
	}
	switch f {
	case Layout:
		if c.Sizing.Layout == geometry.LayoutList {
			c.Sizing.Layout = geometry.LayoutGrid
		} else {
			c.Sizing.Layout = geometry.LayoutList
		}
	case ItemWidth:
		c.Sizing.ItemWidth = max(0, c.Sizing.ItemWidth+float64(step))
	case ItemHeight:
		c.Sizing.ItemHeight = max(1, c.Sizing.ItemHeight+float64(step))
	case MaxColumns:
		c.Sizing.MaxColumns = max(0, c.Sizing.MaxColumns+step)
	case BufferRows:
		c.Sizing.BufferRows = max(0, c.Sizing.BufferRows+step)
	case Stretch:
		c.Stretch = !c.Stretch
	case Async:
		c.AsyncRendering = !c.AsyncRendering
	case ViewCache:
		i := slices.Index(cacheSteps, c.ViewCache)
		if i < 0 {
			i = 0
		}
		c.ViewCache = cacheSteps[(i+step+len(cacheSteps))%len(cacheSteps)]
	case AutoScroll:
		c.AutoScrollOnResize = !c.AutoScrollOnResize
	case ScrollDebounce:
		c.ScrollDebounce = bump(c.ScrollDebounce, step)
	case ResizeDebounce:
		c.ResizeDebounce = bump(c.ResizeDebounce, step)
	}
}

func bump(d config.Duration, step int) config.Duration {
	v := d.D() + time.Duration(step)*10*time.Millisecond
	return config.Duration(max(0, v))
}

func onOff(v bool) string {
	if v {
		return "On"
	}
	return "Off"
}
