package domain

// The two logical collections. A collection holds only units whose
// tag matches its name.
const (
	// CollectionText stores prose units.
	CollectionText = "text"

	// CollectionTables stores table units.
	CollectionTables = "tables"
)

// Collections returns the collection names in canonical order.
func Collections() []string {
	return []string{CollectionText, CollectionTables}
}

// CollectionFor maps a unit tag to its collection name.
// Unknown tags map to the empty string.
func CollectionFor(tag Tag) string {
	switch tag {
	case TagText:
		return CollectionText
	case TagTable:
		return CollectionTables
	default:
		return ""
	}
}

// CollectionInfo describes one collection's state for stats reporting.
type CollectionInfo struct {
	// Name is the collection name.
	Name string

	// Points is the number of stored points.
	Points int

	// Status is "ok" when the collection answered, otherwise an
	// error description.
	Status string
}

// ResetConfirmation reports the outcome of resetting one collection.
type ResetConfirmation struct {
	// Name is the collection name.
	Name string

	// Cleared is true when the collection is now empty.
	Cleared bool

	// Error holds the failure description when Cleared is false.
	Error string
}
