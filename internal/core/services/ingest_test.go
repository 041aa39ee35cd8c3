package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/strata-labs/strata/internal/core/domain"
)

func newTestIngestService(parser *mockParser, fallback *mockChunker, store *mockStore) *IngestService {
	return NewIngestService(
		parser,
		NewUnitClassifier(),
		fallback,
		passthroughPipeline{},
		NewIndexRouter(newMockEmbedder(), store),
	)
}

func TestIngest_StructuredDocument(t *testing.T) {
	parser := &mockParser{blocks: []domain.Block{
		{Kind: domain.BlockTable, Content: "| q | r |\n|---|---|\n| 1 | 2 |"},
		{Kind: domain.BlockProse, Content: "First paragraph."},
		{Kind: domain.BlockProse, Content: "Second paragraph."},
		{Kind: domain.BlockProse, Content: "Third paragraph."},
	}}
	store := newMockStore()
	svc := newTestIngestService(parser, &mockChunker{}, store)

	report, err := svc.Ingest(context.Background(), &domain.RawDocument{
		ID:      "doc-1",
		Name:    "mixed.md",
		Content: "irrelevant, parser is mocked",
	})
	require.NoError(t, err)

	assert.Equal(t, "doc-1", report.DocumentID)
	assert.Equal(t, 4, report.UnitsIndexed)
	assert.Equal(t, 0, report.UnitsFailed)
	assert.Empty(t, report.Degradations)

	assert.Equal(t, 1, store.count(domain.CollectionTables))
	assert.Equal(t, 3, store.count(domain.CollectionText))
}

func TestIngest_FallbackOnStructureUnavailable(t *testing.T) {
	parser := &mockParser{err: domain.ErrStructureUnavailable}
	fallback := &mockChunker{units: []domain.Unit{
		{ID: "w1", Tag: domain.TagText, Content: "window one"},
		{ID: "w2", Tag: domain.TagText, Content: "window two"},
	}}
	store := newMockStore()
	svc := newTestIngestService(parser, fallback, store)

	report, err := svc.Ingest(context.Background(), &domain.RawDocument{ID: "doc-1", Content: "x"})
	require.NoError(t, err)

	assert.Equal(t, 2, report.UnitsIndexed)
	assert.Contains(t, report.Degradations, domain.DegradedFallbackChunker)

	// Fallback units are all text; the tables collection stays empty.
	assert.Equal(t, 2, store.count(domain.CollectionText))
	assert.Equal(t, 0, store.count(domain.CollectionTables))
}

func TestIngest_FallbackOnEmptyClassification(t *testing.T) {
	// Parser succeeds with zero blocks; classification reports missing
	// structure and the fallback path takes over.
	parser := &mockParser{blocks: nil}
	fallback := &mockChunker{units: []domain.Unit{
		{ID: "w1", Tag: domain.TagText, Content: "window"},
	}}
	store := newMockStore()
	svc := newTestIngestService(parser, fallback, store)

	report, err := svc.Ingest(context.Background(), &domain.RawDocument{ID: "doc-1", Content: "x"})
	require.NoError(t, err)
	assert.Equal(t, 1, report.UnitsIndexed)
	assert.Contains(t, report.Degradations, domain.DegradedFallbackChunker)
}

func TestIngest_ParserHardError(t *testing.T) {
	parser := &mockParser{err: errBoom}
	svc := newTestIngestService(parser, &mockChunker{}, newMockStore())

	_, err := svc.Ingest(context.Background(), &domain.RawDocument{ID: "doc-1", Content: "x"})
	require.Error(t, err)
	assert.ErrorIs(t, err, errBoom)
}

func TestIngest_PartialIndexFailure(t *testing.T) {
	parser := &mockParser{blocks: []domain.Block{
		{Kind: domain.BlockProse, Content: "good"},
		{Kind: domain.BlockTable, Content: "| bad |"},
	}}
	store := newMockStore()
	store.failUpsert[domain.CollectionTables] = errBoom
	svc := newTestIngestService(parser, &mockChunker{}, store)

	report, err := svc.Ingest(context.Background(), &domain.RawDocument{ID: "doc-1", Content: "x"})
	require.NoError(t, err)

	assert.Equal(t, 1, report.UnitsIndexed)
	assert.Equal(t, 1, report.UnitsFailed)
	assert.Equal(t, 1, store.count(domain.CollectionText))
}

func TestIngest_NilDocument(t *testing.T) {
	svc := newTestIngestService(&mockParser{}, &mockChunker{}, newMockStore())

	_, err := svc.Ingest(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.Ingest(context.Background(), &domain.RawDocument{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestIngest_FallbackChunkerError(t *testing.T) {
	parser := &mockParser{err: domain.ErrStructureUnavailable}
	fallback := &mockChunker{err: errBoom}
	svc := newTestIngestService(parser, fallback, newMockStore())

	_, err := svc.Ingest(context.Background(), &domain.RawDocument{ID: "doc-1", Content: "x"})
	require.Error(t, err)
	assert.ErrorIs(t, err, errBoom)
}
