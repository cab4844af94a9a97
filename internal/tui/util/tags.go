package util

import (
	"strings"
	"unicode"

	"github.com/mattn/go-runewidth"

	"rvscroll/internal/command"
	"rvscroll/internal/tui/state"
)

// ComputeTags turns the command counts of one reconciliation, plus cache
// reuse and cache size, into status chips.
//
// The returned slice preserves a stable order:
//
//	Rows+, Rows-, Shifted, Items+, Items-, Updated, Reused, Cached
//
// Rules:
//   - Row and item counters are only included when non-zero.
//   - Reused counts cached views reattached instead of rendered fresh.
//   - Cached is always included when the cache is enabled (cached >= 0).
func ComputeTags(counts map[command.Kind]int, reused, cached int) []state.Tag {
	tags := make([]state.Tag, 0, 8)
	add := func(k state.TagKind, v int) {
		if v > 0 {
			tags = append(tags, state.Tag{Kind: k, Value: v})
		}
	}
	add(state.ROWS_CREATED, counts[command.CreateRow])
	add(state.ROWS_REMOVED, counts[command.RemoveRow])
	add(state.ROWS_SHIFTED, counts[command.ShiftRow])
	add(state.ITEMS_CREATED, counts[command.CreateItem])
	add(state.ITEMS_REMOVED, counts[command.RemoveItem])
	add(state.ITEMS_UPDATED, counts[command.UpdateItem])
	add(state.REUSED, reused)
	if cached >= 0 {
		tags = append(tags, state.Tag{Kind: state.CACHED, Value: cached})
	}
	return tags
}

// Fit shortens s so it occupies at most width terminal cells. It prefers to
// cut at the last whitespace boundary and falls back to a hard cut, adding an
// ellipsis when anything was dropped.
func Fit(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= width {
		return s
	}
	if width == 1 {
		return "…"
	}
	if cut := wordSafeTrim(s, width-1); cut != "" {
		return cut + "…"
	}
	return hardTruncate(s, width-1) + "…"
}

// Pad right-pads s with spaces to exactly width cells, truncating first when
// it is wider.
func Pad(s string, width int) string {
	s = Fit(s, width)
	return s + strings.Repeat(" ", max(0, width-runewidth.StringWidth(s)))
}

// wordSafeTrim returns the longest prefix of s ending at a whitespace
// boundary that fits in width cells, without trailing whitespace. It returns
// "" when no boundary exists.
func wordSafeTrim(s string, width int) string {
	used := 0
	boundary := -1
	for i, r := range s {
		w := runewidth.RuneWidth(r)
		if used+w > width {
			break
		}
		if unicode.IsSpace(r) {
			boundary = i
		}
		used += w
	}
	if boundary <= 0 {
		return ""
	}
	return strings.TrimSpace(s[:boundary])
}

// hardTruncate returns s cut to at most width cells. Wide runes that would
// straddle the edge are dropped.
func hardTruncate(s string, width int) string {
	return runewidth.Truncate(s, width, "")
}
