package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"rvscroll/internal/geometry"
)

// DefaultPath is where init writes and other subcommands look by default.
const DefaultPath = "rvscroll.config.json"

// Config is the on-disk shape: sizing options plus the scroller tunables.
// {"sizing": {"item_height": 3, ...}, "scroll_debounce": "50ms", ...}
type Config struct {
	Sizing geometry.SizingOptions `json:"sizing"`

	ScrollDebounce     Duration `json:"scroll_debounce"`
	ResizeDebounce     Duration `json:"resize_debounce"`
	AsyncRendering     bool     `json:"async_rendering,omitempty"`
	ViewCache          int      `json:"view_cache"` // -1 unlimited, 0 off
	AutoScrollOnResize bool     `json:"auto_scroll_on_resize,omitempty"`
	Stretch            bool     `json:"stretch,omitempty"`
	StretchInset       float64  `json:"stretch_inset"`

	// Extra keeps unknown top-level keys so Save does not drop them.
	Extra map[string]json.RawMessage `json:"-"`
}

// Duration is a time.Duration that reads and writes as "50ms".
type Duration time.Duration

func (d Duration) D() time.Duration { return time.Duration(d) }

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

// UnmarshalJSON accepts a duration string or a number of milliseconds.
func (d *Duration) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		v, err := time.ParseDuration(s)
		if err != nil {
			return fmt.Errorf("duration %q: %w", s, err)
		}
		*d = Duration(v)
		return nil
	}
	var ms float64
	if err := json.Unmarshal(b, &ms); err != nil {
		return fmt.Errorf("duration must be a string or milliseconds: %s", b)
	}
	*d = Duration(time.Duration(ms * float64(time.Millisecond)))
	return nil
}

// Default returns the configuration the demo starts with. Item sizes are in
// terminal cells.
func Default() *Config {
	s := geometry.DefaultSizingOptions()
	s.ItemWidth = 24
	s.ItemHeight = 3
	s.MaxColumns = 4
	s.Layout = geometry.LayoutGrid
	return &Config{
		Sizing:             s,
		ScrollDebounce:     Duration(50 * time.Millisecond),
		ResizeDebounce:     Duration(20 * time.Millisecond),
		ViewCache:          -1,
		AutoScrollOnResize: true,
		StretchInset:       2,
	}
}

var ErrNegativeDebounce = errors.New("debounce must not be negative")

// Validate checks the sizing options and tunables.
func (c *Config) Validate() error {
	if err := c.Sizing.Validate(); err != nil {
		return fmt.Errorf("sizing: %w", err)
	}
	if c.ScrollDebounce < 0 || c.ResizeDebounce < 0 {
		return ErrNegativeDebounce
	}
	if c.ViewCache < -1 {
		return fmt.Errorf("view_cache %d: want -1, 0 or a positive limit", c.ViewCache)
	}
	return nil
}

// Load reads path on top of Default so partial files keep the defaults for
// missing keys.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	c := Default()
	if err := json.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("parse config JSON: %w", err)
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err == nil {
		for _, k := range knownKeys {
			delete(raw, k)
		}
		if len(raw) > 0 {
			c.Extra = raw
		}
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return c, nil
}

// LoadOrDefault is Load, except that a missing file yields Default.
func LoadOrDefault(path string) (*Config, error) {
	c, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return c, err
}

var knownKeys = []string{
	"sizing", "scroll_debounce", "resize_debounce", "async_rendering",
	"view_cache", "auto_scroll_on_resize", "stretch", "stretch_inset",
}

func Save(path string, c *Config) error {
	var v any = c
	if len(c.Extra) > 0 {
		data, err := json.Marshal(c)
		if err != nil {
			return err
		}
		var m map[string]json.RawMessage
		if err := json.Unmarshal(data, &m); err != nil {
			return err
		}
		for k, raw := range c.Extra {
			if _, ok := m[k]; !ok {
				m[k] = raw
			}
		}
		v = m
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0644)
}
