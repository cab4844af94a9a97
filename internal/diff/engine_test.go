package diff

import (
	"testing"

	"rvscroll/internal/command"
	"rvscroll/internal/geometry"
)

func opts() geometry.SizingOptions {
	return geometry.SizingOptions{ItemWidth: 300, ItemHeight: 200, BufferRows: 1, MaxColumns: 3, Layout: geometry.LayoutGrid}
}

func window(top float64, rect geometry.Rect, n int, ts int64, o geometry.SizingOptions) geometry.Window {
	return geometry.ComputeWindow(top, geometry.Measure(rect, o), n, ts, o)
}

var rect = geometry.Rect{Width: 900, Height: 660}

func kinds(cmds []command.Command) map[command.Kind]int { return command.Counts(cmds) }

func TestInitialPassCreatesEverything(t *testing.T) {
	cur := window(0, rect, 521, 1, opts())
	plan := Engine{}.Diff(geometry.Empty(), cur)
	k := kinds(plan.Commands)
	if k[command.CreateRow] != 5 || k[command.CreateItem] != 15 {
		t.Fatalf("expected 5 rows and 15 items, got %v", k)
	}
	// rows come before items, rows ascending by slot
	for i := 0; i < 5; i++ {
		c := plan.Commands[i]
		if c.Kind != command.CreateRow || c.Slot != i || c.Offset != float64(i)*200 {
			t.Fatalf("unexpected command %d: %v", i, c)
		}
	}
	if plan.Commands[5].Kind != command.CreateItem || plan.Commands[5].DataIndex != 0 {
		t.Fatalf("expected first item create for index 0, got %v", plan.Commands[5])
	}
}

func TestEqualWindowsProduceNothing(t *testing.T) {
	w := window(1234, rect, 521, 1, opts())
	if p := (Engine{}).Diff(w, w); !p.Empty() {
		t.Fatalf("expected empty plan, got %v", p.Commands)
	}
	bottom := window(34140, rect, 521, 1, opts())
	if p := (Engine{}).Diff(bottom, bottom); !p.Empty() {
		t.Fatalf("expected empty plan at partial trailing row, got %v", p.Commands)
	}
}

func TestScrollOneRowShiftsOneSlot(t *testing.T) {
	prev := window(1000, rect, 521, 1, opts())
	cur := window(1200, rect, 521, 1, opts())
	plan := Engine{}.Diff(prev, cur)
	k := kinds(plan.Commands)
	if k[command.CreateRow] != 0 || k[command.RemoveRow] != 0 {
		t.Fatalf("scrolling must recycle, got %v", k)
	}
	if k[command.ShiftRow] != 1 || k[command.UpdateItem] != 3 {
		t.Fatalf("expected one shift and three updates, got %v", k)
	}
	var shift command.Command
	for _, c := range plan.Commands {
		if c.Kind == command.ShiftRow {
			shift = c
		}
	}
	if shift.Slot != prev.VisibleStartRow%prev.ActualRowCount || shift.VirtualRow != cur.VisibleEndRow {
		t.Fatalf("unexpected shift: %v", shift)
	}
}

func TestEmptyDataEmitsNothing(t *testing.T) {
	a := window(0, rect, 0, 1, opts())
	b := window(400, rect, 0, 2, opts())
	if p := (Engine{}).Diff(geometry.Empty(), a); !p.Empty() {
		t.Fatalf("expected no commands, got %v", p.Commands)
	}
	if p := (Engine{}).Diff(a, b); !p.Empty() {
		t.Fatalf("expected no commands, got %v", p.Commands)
	}
}

func TestShrinkingItemsRemovesRowsBackToFront(t *testing.T) {
	prev := window(0, rect, 521, 1, opts())
	cur := window(0, rect, 7, 2, opts())
	plan := Engine{}.Diff(prev, cur)
	k := kinds(plan.Commands)
	if k[command.RemoveRow] != 2 {
		t.Fatalf("expected two removed rows, got %v", k)
	}
	// first commands remove items of the highest slot, highest column first
	first := plan.Commands[0]
	if first.Kind != command.RemoveItem || first.Slot != 4 || first.Column != 2 {
		t.Fatalf("unexpected first removal: %v", first)
	}
	// row 2 keeps index 6 only
	removed := 0
	for _, c := range plan.Commands {
		if c.Kind == command.RemoveItem && c.Slot == 2 {
			removed++
		}
	}
	if removed != 2 {
		t.Fatalf("expected indices 7 and 8 removed from slot 2, got %d", removed)
	}
}

func TestMalformedPrevDegradesToFullCreate(t *testing.T) {
	bad := geometry.Window{VisibleStartRow: 0, VisibleEndRow: 3, ActualRowCount: 0, ActualColumnCount: 3}
	cur := window(0, rect, 30, 1, opts())
	plan := Engine{}.Diff(bad, cur)
	if kinds(plan.Commands)[command.CreateRow] != cur.ActualRowCount {
		t.Fatalf("expected full create pass, got %v", kinds(plan.Commands))
	}
}

func TestDataChangeUsesEqualFunc(t *testing.T) {
	prev := window(0, rect, 30, 1, opts())
	cur := window(0, rect, 30, 2, opts())
	if p := (Engine{}).Diff(prev, cur); !p.Empty() {
		t.Fatalf("index equality must not update, got %v", p.Commands)
	}
	p := Engine{Equal: NeverEqual}.Diff(prev, cur)
	if kinds(p.Commands)[command.UpdateItem] != 15 {
		t.Fatalf("expected every visible item updated, got %v", kinds(p.Commands))
	}
}

func TestCreateRowsRecycleWhileScrolling(t *testing.T) {
	o := opts()
	prev := geometry.Empty()
	creates := 0
	for top := 0.0; top <= 34140; top += 50 {
		cur := window(top, rect, 521, 1, o)
		if geometry.SameRendering(prev, cur) {
			continue
		}
		creates += kinds(Engine{}.Diff(prev, cur).Commands)[command.CreateRow]
		prev = cur
	}
	if creates != 5 {
		t.Fatalf("expected only the initial 5 rows to be created, got %d", creates)
	}
}

func TestDeferredCreatesWhenBothPassesApply(t *testing.T) {
	// Hand-built windows whose slot sets are not nested.
	prev := geometry.Window{VisibleStartRow: 0, VisibleEndRow: 0, ActualRowCount: 2, ActualColumnCount: 1, VirtualItemCount: 10, ItemHeight: 10}
	cur := geometry.Window{VisibleStartRow: 1, VisibleEndRow: 1, ActualRowCount: 2, ActualColumnCount: 1, VirtualItemCount: 10, ItemHeight: 10}
	plan := Engine{}.Diff(prev, cur)
	k := kinds(plan.Commands)
	if k[command.RemoveRow] != 1 || k[command.CreateRow] != 0 {
		t.Fatalf("expected removal only, got %v", k)
	}
	if plan.Deferred[1] != 1 {
		t.Fatalf("expected slot 1 deferred, got %v", plan.Deferred)
	}
	next := Engine{}.CreatePass(cur, plan.Deferred)
	if len(next) != 2 || next[0].Kind != command.CreateRow || next[1].DataIndex != 1 {
		t.Fatalf("unexpected deferred create pass: %v", next)
	}
}
