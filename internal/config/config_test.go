package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"rvscroll/internal/geometry"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestSaveLoadKeepsValuesAndUnknownKeys(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cfg.json")
	input := `{
  "sizing": {"item_height": 4, "item_width": 30, "layout": "list"},
  "scroll_debounce": 75,
  "theme": {"accent": "magenta"}
}`
	if err := os.WriteFile(path, []byte(input), 0644); err != nil {
		t.Fatal(err)
	}
	c, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Sizing.ItemHeight != 4 || c.Sizing.Layout != geometry.LayoutList {
		t.Fatalf("unexpected sizing: %+v", c.Sizing)
	}
	if c.Sizing.BufferRows != geometry.DefaultBufferRows {
		t.Fatalf("missing keys must keep defaults, got buffer rows %d", c.Sizing.BufferRows)
	}
	if c.ScrollDebounce.D() != 75*time.Millisecond || c.ResizeDebounce.D() != 20*time.Millisecond {
		t.Fatalf("unexpected debounces %v %v", c.ScrollDebounce.D(), c.ResizeDebounce.D())
	}
	if _, ok := c.Extra["theme"]; !ok {
		t.Fatalf("unknown key dropped: %v", c.Extra)
	}

	out := filepath.Join(dir, "out.json")
	if err := Save(out, c); err != nil {
		t.Fatalf("save: %v", err)
	}
	data, _ := os.ReadFile(out)
	if !strings.Contains(string(data), `"scroll_debounce": "75ms"`) || !strings.Contains(string(data), `"accent": "magenta"`) {
		t.Fatalf("unexpected saved config:\n%s", data)
	}
	again, err := Load(out)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if again.Sizing != c.Sizing || again.ScrollDebounce != c.ScrollDebounce {
		t.Fatalf("round trip changed values: %+v vs %+v", again, c)
	}
}

func TestLoadRejectsMissingItemHeight(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.json")
	os.WriteFile(path, []byte(`{"sizing": {"item_height": 0}}`), 0644)
	_, err := Load(path)
	if !errors.Is(err, geometry.ErrMissingItemHeight) {
		t.Fatalf("expected ErrMissingItemHeight, got %v", err)
	}
}

func TestLoadRejectsBadDuration(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.json")
	os.WriteFile(path, []byte(`{"resize_debounce": "soon"}`), 0644)
	if _, err := Load(path); err == nil || !strings.Contains(err.Error(), "parse config JSON") {
		t.Fatalf("expected parse error, got %v", err)
	}
}

func TestValidateViewCache(t *testing.T) {
	c := Default()
	c.ViewCache = -2
	if err := c.Validate(); err == nil {
		t.Fatalf("expected error for view_cache -2")
	}
	c.ViewCache = 0
	c.ScrollDebounce = Duration(-time.Millisecond)
	if err := c.Validate(); !errors.Is(err, ErrNegativeDebounce) {
		t.Fatalf("expected ErrNegativeDebounce, got %v", err)
	}
}

func TestLoadOrDefaultMissingFile(t *testing.T) {
	c, err := LoadOrDefault(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil || c == nil || c.Sizing.ItemHeight != 3 {
		t.Fatalf("expected defaults, got %+v %v", c, err)
	}
}
