package driven

import "context"

// Reranker reorders a candidate set with a cross-encoder-style relevance
// signal that reads (query, passage) pairs. This is an optional service:
// when unavailable, the query service falls back to similarity ordering.
type Reranker interface {
	// Rerank scores every passage against the query and returns one
	// score per passage, index-aligned with the input. Scores are
	// comparable across passages regardless of origin collection.
	Rerank(ctx context.Context, query string, passages []string) ([]float64, error)

	// ModelName returns the name of the reranking model being used.
	ModelName() string

	// Close releases resources.
	Close() error
}
