package services

import (
	"github.com/google/uuid"

	"github.com/strata-labs/strata/internal/core/domain"
)

// UnitClassifier turns parsed blocks into tagged units, one per block.
// The tag comes straight from the block's structural marker; content
// is carried verbatim, so a table block becomes exactly one table
// unit however large it is.
type UnitClassifier struct{}

// NewUnitClassifier creates a new unit classifier.
func NewUnitClassifier() *UnitClassifier {
	return &UnitClassifier{}
}

// Classify maps blocks to ordered units. An absent or empty block
// list yields domain.ErrStructureUnavailable; the caller must then
// route the document to the fallback chunker. No partial
// classification is attempted.
func (c *UnitClassifier) Classify(doc *domain.RawDocument, blocks []domain.Block) ([]domain.Unit, error) {
	if doc == nil {
		return nil, domain.ErrInvalidInput
	}
	if len(blocks) == 0 {
		return nil, domain.ErrStructureUnavailable
	}

	units := make([]domain.Unit, 0, len(blocks))
	for i, block := range blocks {
		var tag domain.Tag
		switch block.Kind {
		case domain.BlockProse:
			tag = domain.TagText
		case domain.BlockTable:
			tag = domain.TagTable
		default:
			return nil, domain.ErrStructureUnavailable
		}

		units = append(units, domain.Unit{
			ID:         uuid.New().String(),
			Tag:        tag,
			Content:    block.Content,
			DocumentID: doc.ID,
			Position:   i,
			Metadata: map[string]any{
				"filename": doc.Name,
			},
		})
	}

	return units, nil
}
