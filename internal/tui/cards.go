package tui

import (
	"fmt"

	"rvscroll/internal/tui/state"
)

var (
	adjectives = []string{"Quiet", "Amber", "Swift", "Hollow", "緑の", "Crimson", "Lucky", "静かな", "Brave", "Velvet"}
	nouns      = []string{"Harbor", "Falcon", "Lantern", "河", "Meadow", "Comet", "Orchard", "山脈", "Signal", "Pebble"}
)

// GenerateCards returns n deterministic cards with IDs starting at start.
// Some titles contain double-width runes.
func GenerateCards(n, start int) []state.Card {
	out := make([]state.Card, n)
	for i := range out {
		id := start + i
		out[i] = state.Card{
			ID:    id,
			Title: adjectives[id%len(adjectives)] + " " + nouns[(id/len(adjectives))%len(nouns)],
			Body:  fmt.Sprintf("card %d of the demo set", id),
		}
	}
	return out
}
