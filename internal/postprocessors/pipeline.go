// Package postprocessors provides unit processing implementations.
package postprocessors

import (
	"context"
	"fmt"

	"github.com/strata-labs/strata/internal/core/domain"
	"github.com/strata-labs/strata/internal/core/ports/driven"
)

// Pipeline chains multiple PostProcessors and runs them in order.
// It implements the PostProcessorPipeline interface.
type Pipeline struct {
	processors []driven.PostProcessor
}

// NewPipeline creates a new processing pipeline with the given processors.
// Processors are executed in the order provided.
func NewPipeline(processors ...driven.PostProcessor) *Pipeline {
	return &Pipeline{
		processors: processors,
	}
}

// Process runs the units through all processors in order.
// A creating processor (e.g., the fallback chunker) receives nil units
// and produces them; enriching processors receive and return units.
func (p *Pipeline) Process(ctx context.Context, doc *domain.RawDocument, units []domain.Unit) ([]domain.Unit, error) {
	if doc == nil {
		return nil, fmt.Errorf("document is nil")
	}

	for _, processor := range p.processors {
		var err error
		units, err = processor.Process(ctx, doc, units)
		if err != nil {
			return nil, fmt.Errorf("processor %s: %w", processor.Name(), err)
		}
	}

	return units, nil
}

// Add appends a processor to the pipeline.
func (p *Pipeline) Add(processor driven.PostProcessor) {
	p.processors = append(p.processors, processor)
}

// Len returns the number of processors in the pipeline.
func (p *Pipeline) Len() int {
	return len(p.processors)
}
