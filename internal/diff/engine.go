package diff

import (
	"slices"

	"rvscroll/internal/command"
	"rvscroll/internal/geometry"
	"rvscroll/internal/setops"
)

// EqualFunc reports whether the item shown at prevIndex in the previous
// window is the same as the one at curIndex in the current window.
type EqualFunc func(prevIndex, curIndex int) bool

// IndexEqual treats two positions as the same item when their indices match.
func IndexEqual(prevIndex, curIndex int) bool { return prevIndex == curIndex }

// NeverEqual forces an update for every retained, still valid column.
func NeverEqual(int, int) bool { return false }

// Engine turns a pair of windows into the commands that reconcile the
// rendered rows of the first with the rows required by the second.
// The zero value compares items by index.
type Engine struct {
	Equal EqualFunc
}

// Plan is the result of one diff pass. Deferred holds slot → row for rows
// that must be created but were held back because the same pass removes
// rows; it is handed to CreatePass on the next tick.
type Plan struct {
	Commands []command.Command
	Deferred map[int]int
}

// Empty reports whether the plan would change nothing.
func (p Plan) Empty() bool { return len(p.Commands) == 0 && len(p.Deferred) == 0 }

func (e Engine) equal(prevIndex, curIndex int) bool {
	if e.Equal == nil {
		return IndexEqual(prevIndex, curIndex)
	}
	return e.Equal(prevIndex, curIndex)
}

// Diff computes the plan that moves the rendered state of prev to cur.
func (e Engine) Diff(prev, cur geometry.Window) Plan {
	prevSlots := SlotMap(prev)
	curSlots := SlotMap(cur)

	var plan Plan
	removed := setops.Difference(prevSlots, curSlots)
	added := setops.Difference(curSlots, prevSlots)

	switch {
	case !setops.IsEmpty(removed):
		plan.Commands = append(plan.Commands, removePass(prev, removed)...)
		if !setops.IsEmpty(added) {
			plan.Deferred = added
		}
	case !setops.IsEmpty(added):
		plan.Commands = append(plan.Commands, e.CreatePass(cur, added)...)
	}

	retained := setops.Intersection(prevSlots, curSlots)
	if !setops.IsEmpty(retained) {
		plan.Commands = append(plan.Commands, e.updatePass(prev, cur, retained)...)
	}
	return plan
}

// CreatePass emits CreateRow then CreateItem commands for slots (slot → row)
// of w, slots ascending and columns ascending.
func (e Engine) CreatePass(w geometry.Window, slots map[int]int) []command.Command {
	var rows, items []command.Command
	for _, slot := range setops.SortedKeys(slots) {
		row := slots[slot]
		rows = append(rows, command.NewCreateRow(row, slot, w.RowOffset(row)))
		ForColumns(0, w.ActualColumnCount-1, row, w.ActualColumnCount, w.VirtualItemCount, func(c, idx int) {
			items = append(items, command.NewCreateItem(row, slot, c, idx))
		})
	}
	return append(rows, items...)
}

// removePass removes the items of every removed slot back to front, then the
// rows themselves.
func removePass(prev geometry.Window, slots map[int]int) []command.Command {
	var rows, items []command.Command
	for _, slot := range setops.SortedKeys(slots) {
		row := slots[slot]
		rows = append(rows, command.NewRemoveRow(row, slot))
		ForColumns(0, prev.ActualColumnCount-1, row, prev.ActualColumnCount, prev.VirtualItemCount, func(c, idx int) {
			items = append(items, command.NewRemoveItem(row, slot, c, idx))
		})
	}
	slices.Reverse(items)
	return append(items, rows...)
}

func (e Engine) updatePass(prev, cur geometry.Window, retained map[int]setops.Pair[int]) []command.Command {
	var (
		shifts, creates, removes, updates []command.Command
		colCreates, colRemoves            []command.Command
	)

	shared := min(prev.ActualColumnCount, cur.ActualColumnCount)
	columnDelta := cur.ActualColumnCount - prev.ActualColumnCount
	trailing := prev.VirtualItemCount <= geometry.MaxIndex(prev) || cur.VirtualItemCount <= geometry.MaxIndex(cur)
	dataChanged := prev.DataTimestamp != cur.DataTimestamp

	for _, slot := range setops.SortedKeys(retained) {
		prevRow, row := retained[slot].Left, retained[slot].Right

		if row != prevRow {
			shifts = append(shifts, command.NewShiftRow(row, slot, cur.RowOffset(row)))
		}

		if row != prevRow || columnDelta != 0 || trailing || dataChanged {
			ForColumnsWithPrev(0, shared-1, row, cur.ActualColumnCount, prevRow, prev.ActualColumnCount, func(c, idx, prevIdx int) {
				valid := idx < cur.VirtualItemCount
				wasValid := prevIdx < prev.VirtualItemCount
				switch {
				case !valid && wasValid:
					removes = append(removes, command.NewRemoveItem(row, slot, c, prevIdx))
				case valid && !wasValid:
					creates = append(creates, command.NewCreateItem(row, slot, c, idx))
				case valid && wasValid && !e.equal(prevIdx, idx):
					updates = append(updates, command.NewUpdateItem(row, slot, c, idx))
				}
			})
		}

		switch {
		case columnDelta > 0:
			ForColumns(shared, cur.ActualColumnCount-1, row, cur.ActualColumnCount, cur.VirtualItemCount, func(c, idx int) {
				colCreates = append(colCreates, command.NewCreateItem(row, slot, c, idx))
			})
		case columnDelta < 0:
			ForColumns(shared, prev.ActualColumnCount-1, prevRow, prev.ActualColumnCount, prev.VirtualItemCount, func(c, idx int) {
				colRemoves = append(colRemoves, command.NewRemoveItem(prevRow, slot, c, idx))
			})
		}
	}

	slices.Reverse(removes)
	slices.Reverse(colRemoves)

	out := make([]command.Command, 0, len(removes)+len(creates)+len(updates)+len(shifts)+len(colRemoves)+len(colCreates))
	out = append(out, removes...)
	out = append(out, creates...)
	out = append(out, updates...)
	out = append(out, shifts...)
	out = append(out, colRemoves...)
	out = append(out, colCreates...)
	return out
}
