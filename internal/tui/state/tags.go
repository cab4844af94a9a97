package state

// TagKind enumerates the chips summarizing what the last plan did.
type TagKind int

const (
	// Stable ordering for display: rows created, removed, shifted, items
	// created, removed, updated, reused from cache, cached.
	ROWS_CREATED TagKind = iota
	ROWS_REMOVED
	ROWS_SHIFTED
	ITEMS_CREATED
	ITEMS_REMOVED
	ITEMS_UPDATED
	REUSED
	CACHED
)

// Tag represents a single status chip. Value is the counter it displays.
type Tag struct {
	Kind  TagKind
	Value int
}
