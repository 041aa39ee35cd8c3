package services

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/strata-labs/strata/internal/core/domain"
	"github.com/strata-labs/strata/internal/core/ports/driven"
)

// mockEmbedder is a test implementation of driven.EmbeddingService.
type mockEmbedder struct {
	embedFunc func(text string) ([]float32, error)
	calls     int
	mu        sync.Mutex
}

func newMockEmbedder() *mockEmbedder {
	return &mockEmbedder{
		embedFunc: func(text string) ([]float32, error) {
			// Deterministic pseudo-embedding derived from content length.
			return []float32{float32(len(text)), 1, 0}, nil
		},
	}
}

func (m *mockEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
	return m.embedFunc(text)
}

func (m *mockEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, text := range texts {
		embedding, err := m.Embed(ctx, text)
		if err != nil {
			return nil, err
		}
		out[i] = embedding
	}
	return out, nil
}

func (m *mockEmbedder) Dimensions() int             { return 3 }
func (m *mockEmbedder) ModelName() string           { return "mock-embed" }
func (m *mockEmbedder) Ping(context.Context) error  { return nil }
func (m *mockEmbedder) Close() error                { return nil }

// mockStore is an in-memory driven.VectorStore with per-collection
// fault injection.
type mockStore struct {
	mu     sync.Mutex
	points map[string]map[string]driven.Point

	// failSearch, failUpsert, failCount and failReset make the named
	// collection return an error from that operation.
	failSearch map[string]error
	failUpsert map[string]error
	failCount  map[string]error
	failReset  map[string]error

	// similarities overrides the similarity reported per point ID.
	similarities map[string]float64
}

func newMockStore() *mockStore {
	return &mockStore{
		points:       make(map[string]map[string]driven.Point),
		failSearch:   make(map[string]error),
		failUpsert:   make(map[string]error),
		failCount:    make(map[string]error),
		failReset:    make(map[string]error),
		similarities: make(map[string]float64),
	}
}

func (m *mockStore) Upsert(_ context.Context, collection string, point driven.Point) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.failUpsert[collection]; err != nil {
		return err
	}
	if m.points[collection] == nil {
		m.points[collection] = make(map[string]driven.Point)
	}
	m.points[collection][point.ID] = point
	return nil
}

func (m *mockStore) Search(_ context.Context, collection string, _ []float32, limit int) ([]driven.VectorHit, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.failSearch[collection]; err != nil {
		return nil, err
	}

	hits := make([]driven.VectorHit, 0, len(m.points[collection]))
	for _, point := range m.points[collection] {
		hits = append(hits, driven.VectorHit{
			Point:      point,
			Similarity: m.similarities[point.ID],
		})
	}
	sort.Slice(hits, func(i, j int) bool {
		if hits[i].Similarity != hits[j].Similarity {
			return hits[i].Similarity > hits[j].Similarity
		}
		return hits[i].Point.ID < hits[j].Point.ID
	})
	if limit >= 0 && len(hits) > limit {
		hits = hits[:limit]
	}
	return hits, nil
}

func (m *mockStore) Count(_ context.Context, collection string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.failCount[collection]; err != nil {
		return 0, err
	}
	return len(m.points[collection]), nil
}

func (m *mockStore) Reset(_ context.Context, collection string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.failReset[collection]; err != nil {
		return err
	}
	delete(m.points, collection)
	return nil
}

func (m *mockStore) Close() error { return nil }

func (m *mockStore) count(collection string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.points[collection])
}

// mockParser is a test implementation of driven.StructureParser.
type mockParser struct {
	blocks []domain.Block
	err    error
}

func (m *mockParser) Parse(context.Context, *domain.RawDocument) ([]domain.Block, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.blocks, nil
}

// mockReranker is a test implementation of driven.Reranker.
type mockReranker struct {
	rerankFunc func(query string, passages []string) ([]float64, error)
}

func (m *mockReranker) Rerank(_ context.Context, query string, passages []string) ([]float64, error) {
	return m.rerankFunc(query, passages)
}

func (m *mockReranker) ModelName() string { return "mock-rerank" }
func (m *mockReranker) Close() error      { return nil }

// mockChunker stands in for the fallback chunker processor.
type mockChunker struct {
	units []domain.Unit
	err   error
}

func (m *mockChunker) Name() string { return "mock-chunker" }

func (m *mockChunker) Process(_ context.Context, _ *domain.RawDocument, _ []domain.Unit) ([]domain.Unit, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.units, nil
}

// passthroughPipeline returns units unchanged.
type passthroughPipeline struct{}

func (passthroughPipeline) Process(_ context.Context, _ *domain.RawDocument, units []domain.Unit) ([]domain.Unit, error) {
	return units, nil
}

var errBoom = errors.New("boom")
