package tagchips

import (
	"testing"

	"rvscroll/internal/tui/state"
)

func TestViewNoColorLabels(t *testing.T) {
	tags := []state.Tag{
		{Kind: state.ROWS_CREATED, Value: 5},
		{Kind: state.ROWS_SHIFTED, Value: 2},
		{Kind: state.CACHED, Value: 0},
	}
	got := View(tags, true)
	want := "[Rows +5] [Shifted 2] [Cached 0]"
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestViewEmpty(t *testing.T) {
	if got := View(nil, true); got != "" {
		t.Fatalf("expected empty output, got %q", got)
	}
}
