// Package memory provides an in-memory vector store.
// It backs tests and small local runs; production deployments use the
// sqlite adapter.
package memory

import (
	"context"
	"math"
	"sort"
	"sync"

	"github.com/strata-labs/strata/internal/core/domain"
	"github.com/strata-labs/strata/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.VectorStore = (*Store)(nil)

// Store is an in-memory implementation of driven.VectorStore.
// Collections are created lazily; Reset swaps in a fresh map so no
// reader ever observes a partially-cleared collection.
type Store struct {
	mu          sync.RWMutex
	collections map[string]map[string]driven.Point
}

// NewStore creates a new in-memory vector store.
func NewStore() *Store {
	return &Store{
		collections: make(map[string]map[string]driven.Point),
	}
}

// Upsert writes a point, creating the collection on first write.
func (s *Store) Upsert(_ context.Context, collection string, point driven.Point) error {
	if point.ID == "" {
		return domain.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	points, ok := s.collections[collection]
	if !ok {
		points = make(map[string]driven.Point)
		s.collections[collection] = points
	}
	points[point.ID] = point
	return nil
}

// Search returns up to limit points by descending cosine similarity.
// Equal similarities order by point ID so repeated calls agree.
func (s *Store) Search(_ context.Context, collection string, embedding []float32, limit int) ([]driven.VectorHit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	points := s.collections[collection]

	hits := make([]driven.VectorHit, 0, len(points))
	for _, point := range points {
		hits = append(hits, driven.VectorHit{
			Point:      point,
			Similarity: cosineSimilarity(embedding, point.Embedding),
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

// Count returns the number of stored points. A collection never
// written to counts zero.
func (s *Store) Count(_ context.Context, collection string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.collections[collection]), nil
}

// Reset clears one collection by swapping in a fresh map.
// The other collection is untouched.
func (s *Store) Reset(_ context.Context, collection string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.collections[collection] = make(map[string]driven.Point)
	return nil
}

// Close releases resources.
func (s *Store) Close() error {
	return nil
}

// cosineSimilarity computes the cosine of the angle between two
// vectors; zero when either vector is empty or lengths differ.
func cosineSimilarity(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
