package driven

import (
	"context"

	"github.com/strata-labs/strata/internal/core/domain"
)

// StructureParser turns a raw document into ordered structural blocks.
// It is the narrow interface over the document-to-structure collaborator:
// the core calls it once per ingest and branches to the fallback chunker
// when it returns domain.ErrStructureUnavailable.
type StructureParser interface {
	// Parse splits the document into ordered blocks, each marked as
	// prose or table. It returns domain.ErrStructureUnavailable when
	// the input carries no usable structural markup; it never guesses
	// or returns a partial classification.
	Parse(ctx context.Context, doc *domain.RawDocument) ([]domain.Block, error)
}
