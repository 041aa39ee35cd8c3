package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/strata-labs/strata/internal/core/domain"
	"github.com/strata-labs/strata/internal/core/ports/driven"
	"github.com/strata-labs/strata/internal/core/ports/driving"
	"github.com/strata-labs/strata/internal/logger"
)

// Ensure IngestService implements the interface.
var _ driving.IngestService = (*IngestService)(nil)

// IngestService runs the write path: parse into blocks, classify into
// units (or fall back to fixed windows), enrich, then route every unit
// into its collection.
type IngestService struct {
	parser     driven.StructureParser
	classifier *UnitClassifier
	fallback   driven.PostProcessor
	pipeline   driven.PostProcessorPipeline
	router     *IndexRouter
}

// NewIngestService creates a new ingest service. The fallback
// processor handles documents whose structure cannot be parsed; the
// pipeline runs over every unit regardless of path.
func NewIngestService(
	parser driven.StructureParser,
	classifier *UnitClassifier,
	fallback driven.PostProcessor,
	pipeline driven.PostProcessorPipeline,
	router *IndexRouter,
) *IngestService {
	return &IngestService{
		parser:     parser,
		classifier: classifier,
		fallback:   fallback,
		pipeline:   pipeline,
		router:     router,
	}
}

// Ingest processes one document and always returns a report.
// Structure failure switches to the fallback chunker and is recorded
// as a degradation, never surfaced as an error. Unit-level failures
// are counted per unit; partial success is the contract.
func (s *IngestService) Ingest(ctx context.Context, doc *domain.RawDocument) (*domain.IngestReport, error) {
	if doc == nil || doc.ID == "" {
		return nil, domain.ErrInvalidInput
	}

	logger.Section("Ingest")
	logger.Debug("Document: %s (%d bytes)", doc.ID, len(doc.Content))

	report := &domain.IngestReport{DocumentID: doc.ID}

	units, err := s.extractUnits(ctx, doc, report)
	if err != nil {
		return nil, err
	}
	logger.Info("Extracted %d units", len(units))

	if s.pipeline != nil {
		units, err = s.pipeline.Process(ctx, doc, units)
		if err != nil {
			return nil, fmt.Errorf("post-process: %w", err)
		}
	}

	report.UnitsIndexed, report.UnitsFailed = s.router.RouteBatch(ctx, units)
	logger.Info("Ingest complete: %d indexed, %d failed", report.UnitsIndexed, report.UnitsFailed)

	return report, nil
}

// extractUnits runs the structured path and drops to the fallback
// chunker when the parser or classifier reports missing structure.
func (s *IngestService) extractUnits(
	ctx context.Context, doc *domain.RawDocument, report *domain.IngestReport,
) ([]domain.Unit, error) {
	blocks, err := s.parser.Parse(ctx, doc)
	if err == nil {
		var units []domain.Unit
		units, err = s.classifier.Classify(doc, blocks)
		if err == nil {
			return units, nil
		}
	}

	if !errors.Is(err, domain.ErrStructureUnavailable) {
		return nil, fmt.Errorf("parse document %s: %w", doc.ID, err)
	}

	logger.Warn("Structure unavailable for %s, using fixed windows", doc.ID)
	report.Degradations = append(report.Degradations, domain.DegradedFallbackChunker)

	units, err := s.fallback.Process(ctx, doc, nil)
	if err != nil {
		return nil, fmt.Errorf("fallback chunking %s: %w", doc.ID, err)
	}
	return units, nil
}
