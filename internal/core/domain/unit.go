package domain

// Tag classifies a unit's content kind.
// Every consumer must handle all tags exhaustively; adding a tag
// means updating this definition and the switches that use it.
type Tag string

const (
	// TagText marks a prose unit.
	TagText Tag = "text"

	// TagTable marks a tabular unit. A table unit always carries the
	// complete table; no row or column is ever split across units.
	TagTable Tag = "table"
)

// Valid reports whether the tag is a known unit tag.
func (t Tag) Valid() bool {
	switch t {
	case TagText, TagTable:
		return true
	default:
		return false
	}
}

// String returns the tag as a string.
func (t Tag) String() string {
	return string(t)
}

// BlockKind identifies the structural kind of a parsed block.
type BlockKind int

const (
	// BlockProse is a paragraph or other free-text block.
	BlockProse BlockKind = iota

	// BlockTable is a complete table block.
	BlockTable
)

// Block is one structural element produced by the document parser.
// Blocks are ordered as they appear in the source document.
type Block struct {
	// Kind is the structural marker assigned by the parser.
	Kind BlockKind

	// Content is the verbatim text of the block.
	Content string
}

// Unit is the atomic indexed fragment of a document.
// Units are immutable once created; they are embedded and persisted
// by the index router and removed only by a collection reset.
type Unit struct {
	// ID is the unique identifier, stable within one ingest run.
	ID string

	// Tag classifies the unit as text or table.
	Tag Tag

	// Content is the verbatim text or markdown of the fragment.
	// Table units contain the whole table, however large.
	Content string

	// DocumentID links back to the source document of this unit.
	DocumentID string

	// Position is the ordinal position within the source document.
	Position int

	// Metadata contains free-form key-value pairs, such as a table
	// title or column names when they can be derived.
	Metadata map[string]any

	// Embedding is the vector representation, populated by the
	// index router before the unit is stored.
	Embedding []float32
}
