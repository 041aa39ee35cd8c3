package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrStructureUnavailable indicates the structural parser failed or
	// the input carries no usable structure. Recovered locally by
	// switching to the fallback chunker, never surfaced as a hard failure.
	ErrStructureUnavailable = errors.New("document structure unavailable")

	// ErrIndexUnavailable indicates the embedding service or the vector
	// store was unreachable while writing a unit. Reported per unit and
	// aggregated into the ingest report, not fatal to the document.
	ErrIndexUnavailable = errors.New("index unavailable")

	// ErrCollectionUnavailable indicates one collection could not be
	// searched. The query degrades to the surviving collection.
	ErrCollectionUnavailable = errors.New("collection unavailable")

	// ErrRerankUnavailable indicates the reranker was unreachable.
	// The query falls back to raw similarity ordering.
	ErrRerankUnavailable = errors.New("reranker unavailable")

	// ErrEmbeddingUnavailable indicates the embedding service is not
	// configured or unreachable.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")
)
