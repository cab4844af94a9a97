package command

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestUserScrollTop(t *testing.T) {
	if got := ToRow(7).ScrollTop(200, 3); got != 1400 {
		t.Fatalf("focus row: got %v", got)
	}
	if got := ToItem(10).ScrollTop(200, 3); got != 600 {
		t.Fatalf("focus item: got %v", got)
	}
	if got := ToItem(10).ScrollTop(200, 0); got != 2000 {
		t.Fatalf("focus item with zero columns: got %v", got)
	}
	if got := ScrollTo(42).ScrollTop(200, 3); got != 42 {
		t.Fatalf("set scroll top: got %v", got)
	}
}

func TestKindJSONRoundTripByName(t *testing.T) {
	b, err := json.Marshal(NewShiftRow(3, 1, 600))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(b), `"kind":"shift-row"`) {
		t.Fatalf("expected kind name in JSON: %s", b)
	}
	var c Command
	if err := json.Unmarshal(b, &c); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if c.Kind != ShiftRow || c.Offset != 600 {
		t.Fatalf("unexpected command: %+v", c)
	}
}

func TestCounts(t *testing.T) {
	cmds := []Command{NewCreateRow(0, 0, 0), NewCreateItem(0, 0, 0, 0), NewCreateItem(0, 0, 1, 1)}
	c := Counts(cmds)
	if c[CreateRow] != 1 || c[CreateItem] != 2 || c[RemoveRow] != 0 {
		t.Fatalf("unexpected counts: %v", c)
	}
}
