package domain

// Degradation is a machine-readable reason code recorded whenever the
// pipeline takes a degraded-but-available path instead of failing.
type Degradation string

const (
	// DegradedFallbackChunker means structure-aware parsing failed and
	// the document was split into fixed windows instead.
	DegradedFallbackChunker Degradation = "fallback_chunker"

	// DegradedSingleCollection means one collection's search failed and
	// results come from the surviving collection only.
	DegradedSingleCollection Degradation = "single_collection_search"

	// DegradedSimilarityOrder means the reranker was unavailable and
	// results are ordered by raw similarity instead.
	DegradedSimilarityOrder Degradation = "similarity_ordered"
)

// SearchOptions configures a query.
type SearchOptions struct {
	// Limit is the maximum number of results. Defaults to 5 when zero.
	Limit int
}

// SearchResult is a single ranked hit.
type SearchResult struct {
	// Unit is the matched unit as stored at ingest time.
	Unit Unit

	// Score is the relevance score deciding the final order.
	// Higher is more relevant.
	Score float64

	// Similarity is the shortlist similarity from the vector search.
	// It never decides the final order when reranking succeeded, but
	// serves as the secondary tie-break key.
	Similarity float64

	// ContentType is copied from the originating unit's tag so
	// callers can distinguish table hits from text hits.
	ContentType Tag
}

// QueryResponse is the full answer to one query.
type QueryResponse struct {
	// Results is the ranked result list, at most Limit entries,
	// scores non-increasing.
	Results []SearchResult

	// Degradations lists the degraded paths taken while answering,
	// empty when everything was healthy.
	Degradations []Degradation
}

// Degraded reports whether any degraded path was taken.
func (r *QueryResponse) Degraded() bool {
	return len(r.Degradations) > 0
}
