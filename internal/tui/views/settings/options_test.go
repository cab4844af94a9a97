package settings

import (
	"strings"
	"testing"
	"time"

	"rvscroll/internal/config"
	"rvscroll/internal/geometry"
)

func TestRenderDefaults(t *testing.T) {
	lines := RenderOptions(config.Default())
	if len(lines) != Count {
		t.Fatalf("expected %d lines, got %d", Count, len(lines))
	}
	joined := strings.Join(lines, "\n")
	for _, want := range []string{"Layout: grid", "Item width: 24", "Item height: 3", "View cache: unlimited", "Auto-scroll on resize: On", "Scroll debounce: 50ms", "Resize debounce: 20ms"} {
		if !strings.Contains(joined, want) {
			t.Fatalf("expected %q in\n%s", want, joined)
		}
	}
}

func TestRenderCacheBound(t *testing.T) {
	c := config.Default()
	c.ViewCache = 0
	if got := RenderOptions(c)[ViewCache]; got != "View cache: off" {
		t.Fatalf("unexpected %q", got)
	}
	c.ViewCache = 12
	if got := RenderOptions(c)[ViewCache]; got != "View cache: 12 views" {
		t.Fatalf("unexpected %q", got)
	}
}

func TestAdjust(t *testing.T) {
	c := config.Default()
	Adjust(c, Layout, 1)
	if c.Sizing.Layout != geometry.LayoutList {
		t.Fatalf("expected list layout")
	}
	Adjust(c, ItemHeight, -1)
	Adjust(c, ItemHeight, -1)
	Adjust(c, ItemHeight, -1)
	if c.Sizing.ItemHeight != 1 {
		t.Fatalf("item height must not drop below 1, got %v", c.Sizing.ItemHeight)
	}
	Adjust(c, ViewCache, 1)
	if c.ViewCache != 0 {
		t.Fatalf("expected cache off after unlimited, got %d", c.ViewCache)
	}
	Adjust(c, ViewCache, -1)
	Adjust(c, ViewCache, -1)
	if c.ViewCache != 256 {
		t.Fatalf("expected cache to wrap to 256, got %d", c.ViewCache)
	}
	Adjust(c, ResizeDebounce, -1)
	Adjust(c, ResizeDebounce, -1)
	Adjust(c, ResizeDebounce, -1)
	if c.ResizeDebounce.D() != 0 {
		t.Fatalf("debounce must clamp at 0, got %v", c.ResizeDebounce.D())
	}
	Adjust(c, ScrollDebounce, 1)
	if c.ScrollDebounce.D() != 60*time.Millisecond {
		t.Fatalf("unexpected scroll debounce %v", c.ScrollDebounce.D())
	}
	if err := c.Validate(); err != nil {
		t.Fatalf("adjusted config must stay valid: %v", err)
	}
}
