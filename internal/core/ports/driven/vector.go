package driven

import (
	"context"

	"github.com/strata-labs/strata/internal/core/domain"
)

// VectorStore is the persistent backing for the two unit collections.
// Collections are created lazily on first write. Reset on one collection
// never affects the other and is atomic from the caller's perspective.
type VectorStore interface {
	// Upsert writes a point into the named collection, creating the
	// collection if absent. Storage order is not preserved.
	Upsert(ctx context.Context, collection string, point Point) error

	// Search returns at most limit candidates ordered by descending
	// similarity. Ties break arbitrarily but stably within one call.
	// An unreachable or unusable collection yields
	// domain.ErrCollectionUnavailable.
	Search(ctx context.Context, collection string, embedding []float32, limit int) ([]VectorHit, error)

	// Count returns the number of points in the collection.
	// A collection that was never written to counts zero.
	Count(ctx context.Context, collection string) (int, error)

	// Reset clears all points in the collection. Resetting an empty or
	// absent collection succeeds.
	Reset(ctx context.Context, collection string) error

	// Close releases resources.
	Close() error
}

// Point is one stored unit with its embedding.
type Point struct {
	// ID is the unit ID.
	ID string

	// Embedding is the unit's vector.
	Embedding []float32

	// Content is the unit's verbatim content.
	Content string

	// Tag is the unit tag, matching the collection it is stored in.
	Tag domain.Tag

	// DocumentID links back to the source document.
	DocumentID string

	// Metadata carries the unit's free-form metadata.
	Metadata map[string]any
}

// VectorHit is one similarity search candidate.
type VectorHit struct {
	// Point is the stored point.
	Point Point

	// Similarity is the cosine similarity score, higher is closer.
	Similarity float64
}
