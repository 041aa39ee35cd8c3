package driving

import (
	"context"

	"github.com/strata-labs/strata/internal/core/domain"
)

// IngestService feeds documents into the dual index.
type IngestService interface {
	// Ingest classifies the document into units and routes each unit
	// into its collection. It always returns a report; unit failures
	// are counted, not fatal.
	Ingest(ctx context.Context, doc *domain.RawDocument) (*domain.IngestReport, error)
}
