package command

import (
	"encoding/json"
	"fmt"
	"math"
)

// Kind tags a render command.
type Kind int

const (
	NoOp Kind = iota
	CreateRow
	RemoveRow
	ShiftRow
	CreateItem
	RemoveItem
	UpdateItem
)

var kindNames = [...]string{
	NoOp:       "noop",
	CreateRow:  "create-row",
	RemoveRow:  "remove-row",
	ShiftRow:   "shift-row",
	CreateItem: "create-item",
	RemoveItem: "remove-item",
	UpdateItem: "update-item",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return kindNames[k]
}

// MarshalText encodes the kind by name.
func (k Kind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// UnmarshalText decodes a kind name.
func (k *Kind) UnmarshalText(b []byte) error {
	for i, n := range kindNames {
		if n == string(b) {
			*k = Kind(i)
			return nil
		}
	}
	return fmt.Errorf("unknown command kind %q", string(b))
}

// IsRow reports whether the kind targets a whole row.
func (k Kind) IsRow() bool { return k == CreateRow || k == RemoveRow || k == ShiftRow }

// IsItem reports whether the kind targets a single item view.
func (k Kind) IsItem() bool { return k == CreateItem || k == RemoveItem || k == UpdateItem }

// Command is one step of a reconciliation. Slot is the recyclable row
// position, VirtualRow the logical row it shows. Column and DataIndex are -1
// for row commands; Offset is only meaningful for CreateRow and ShiftRow.
type Command struct {
	Kind       Kind    `json:"kind"`
	VirtualRow int     `json:"row"`
	Slot       int     `json:"slot"`
	Column     int     `json:"column"`
	DataIndex  int     `json:"data_index"`
	Offset     float64 `json:"offset,omitempty"`
}

// NewCreateRow renders virtual row at slot, positioned at offset.
func NewCreateRow(row, slot int, offset float64) Command {
	return Command{Kind: CreateRow, VirtualRow: row, Slot: slot, Column: -1, DataIndex: -1, Offset: offset}
}

// NewRemoveRow releases slot.
func NewRemoveRow(row, slot int) Command {
	return Command{Kind: RemoveRow, VirtualRow: row, Slot: slot, Column: -1, DataIndex: -1}
}

// NewShiftRow moves slot to another virtual row and offset.
func NewShiftRow(row, slot int, offset float64) Command {
	return Command{Kind: ShiftRow, VirtualRow: row, Slot: slot, Column: -1, DataIndex: -1, Offset: offset}
}

// NewCreateItem renders dataIndex into column of slot.
func NewCreateItem(row, slot, column, dataIndex int) Command {
	return Command{Kind: CreateItem, VirtualRow: row, Slot: slot, Column: column, DataIndex: dataIndex}
}

// NewRemoveItem removes the view in column of slot.
func NewRemoveItem(row, slot, column, dataIndex int) Command {
	return Command{Kind: RemoveItem, VirtualRow: row, Slot: slot, Column: column, DataIndex: dataIndex}
}

// NewUpdateItem rebinds the view in column of slot to dataIndex.
func NewUpdateItem(row, slot, column, dataIndex int) Command {
	return Command{Kind: UpdateItem, VirtualRow: row, Slot: slot, Column: column, DataIndex: dataIndex}
}

func (c Command) String() string {
	switch {
	case c.Kind == CreateRow || c.Kind == ShiftRow:
		return fmt.Sprintf("%s row=%d slot=%d offset=%g", c.Kind, c.VirtualRow, c.Slot, c.Offset)
	case c.Kind.IsRow():
		return fmt.Sprintf("%s row=%d slot=%d", c.Kind, c.VirtualRow, c.Slot)
	case c.Kind.IsItem():
		return fmt.Sprintf("%s row=%d slot=%d col=%d data=%d", c.Kind, c.VirtualRow, c.Slot, c.Column, c.DataIndex)
	default:
		return c.Kind.String()
	}
}

// Counts tallies commands per kind.
func Counts(cmds []Command) map[Kind]int {
	out := make(map[Kind]int, len(kindNames))
	for _, c := range cmds {
		out[c.Kind]++
	}
	return out
}

// Encode renders cmds as indented JSON.
func Encode(cmds []Command) ([]byte, error) {
	if cmds == nil {
		cmds = []Command{}
	}
	return json.MarshalIndent(cmds, "", "  ")
}

// UserKind tags a user-issued scroll request.
type UserKind int

const (
	SetScrollTop UserKind = iota
	FocusRow
	FocusItem
)

func (k UserKind) String() string {
	switch k {
	case SetScrollTop:
		return "set-scroll-top"
	case FocusRow:
		return "focus-row"
	case FocusItem:
		return "focus-item"
	default:
		return fmt.Sprintf("user(%d)", int(k))
	}
}

// User is a request to move the viewport. Value is a scroll offset for
// SetScrollTop, a row for FocusRow and a data index for FocusItem.
type User struct {
	Kind  UserKind
	Value float64
}

func ScrollTo(top float64) User { return User{Kind: SetScrollTop, Value: top} }
func ToRow(row int) User { return User{Kind: FocusRow, Value: float64(row)} }
func ToItem(index int) User { return User{Kind: FocusItem, Value: float64(index)} }

// ScrollTop translates u into an absolute scroll offset using the row height
// and column count of the current window.
func (u User) ScrollTop(itemHeight float64, columns int) float64 {
	switch u.Kind {
	case FocusRow:
		return math.Floor(u.Value) * itemHeight
	case FocusItem:
		if columns < 1 {
			columns = 1
		}
		return math.Floor(u.Value/float64(columns)) * itemHeight
	default:
		return u.Value
	}
}
