package driven

import (
	"context"

	"github.com/strata-labs/strata/internal/core/domain"
)

// PostProcessor transforms or enriches units before indexing.
// PostProcessors are chained in a pipeline (e.g., windowing, metadata
// derivation).
type PostProcessor interface {
	// Name returns the processor name for logging and configuration.
	Name() string

	// Process takes the source document and the units produced so far.
	// A creating processor (e.g., the fallback chunker) receives nil
	// units and returns new ones; an enriching processor receives and
	// returns the same units with fields added.
	Process(ctx context.Context, doc *domain.RawDocument, units []domain.Unit) ([]domain.Unit, error)
}

// PostProcessorPipeline chains multiple PostProcessors.
type PostProcessorPipeline interface {
	// Process runs the units through all processors in order.
	Process(ctx context.Context, doc *domain.RawDocument, units []domain.Unit) ([]domain.Unit, error)
}
