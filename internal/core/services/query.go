package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/strata-labs/strata/internal/core/domain"
	"github.com/strata-labs/strata/internal/core/ports/driven"
	"github.com/strata-labs/strata/internal/core/ports/driving"
	"github.com/strata-labs/strata/internal/logger"
)

// Ensure QueryService implements the interface.
var _ driving.QueryService = (*QueryService)(nil)

// DefaultLimit is used when the caller passes no result limit.
const DefaultLimit = 5

// candidate is one shortlist entry before reranking.
type candidate struct {
	point      driven.Point
	similarity float64
}

// QueryService answers queries by fanning out across both collections,
// reranking the combined shortlist and merging into one typed list.
// The embedding service is the same instance used at index time.
type QueryService struct {
	embedder driven.EmbeddingService
	store    driven.VectorStore
	reranker driven.Reranker
}

// NewQueryService creates a new query service.
// The reranker is optional; when nil every query is similarity-ordered.
func NewQueryService(
	embedder driven.EmbeddingService,
	store driven.VectorStore,
	reranker driven.Reranker,
) *QueryService {
	return &QueryService{
		embedder: embedder,
		store:    store,
		reranker: reranker,
	}
}

// Search runs the read path. One collection failing degrades to the
// survivor; a failing reranker degrades to similarity order. Both
// degradations are recorded in the response rather than surfaced as
// errors, so the caller always receives a best-effort result.
func (s *QueryService) Search(
	ctx context.Context, query string, opts domain.SearchOptions,
) (*domain.QueryResponse, error) {
	logger.Section("Query Execution")
	logger.Debug("Query: %q", query)

	query = strings.TrimSpace(query)
	if query == "" {
		logger.Debug("Empty query, returning no results")
		return &domain.QueryResponse{Results: []domain.SearchResult{}}, nil
	}

	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	logger.Debug("Limit: %d", limit)

	if s.embedder == nil {
		return nil, domain.ErrEmbeddingUnavailable
	}
	embedding, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	logger.Debug("Query embedding: %d dimensions", len(embedding))

	response := &domain.QueryResponse{}

	candidates, err := s.fanOut(ctx, embedding, limit, response)
	if err != nil {
		return nil, err
	}
	logger.Debug("Shortlist: %d candidates", len(candidates))

	results := s.rerank(ctx, query, candidates, response)

	if len(results) > limit {
		results = results[:limit]
	}
	response.Results = results

	logger.Info("Final results: %d (degradations: %v)", len(results), response.Degradations)
	return response, nil
}

// fanOut searches both collections concurrently over the same query
// embedding and concatenates the shortlists. Each leg captures its own
// error; only both legs failing fails the query.
func (s *QueryService) fanOut(
	ctx context.Context, embedding []float32, limit int, response *domain.QueryResponse,
) ([]candidate, error) {
	collections := domain.Collections()

	hits := make([][]driven.VectorHit, len(collections))
	errs := make([]error, len(collections))

	var wg sync.WaitGroup
	wg.Add(len(collections))

	for i, collection := range collections {
		go func(i int, collection string) {
			defer wg.Done()
			hits[i], errs[i] = s.store.Search(ctx, collection, embedding, limit)
		}(i, collection)
	}

	wg.Wait()

	failedLegs := 0
	var candidates []candidate
	for i, collection := range collections {
		if errs[i] != nil {
			logger.Warn("Search against %s failed: %v", collection, errs[i])
			failedLegs++
			continue
		}
		logger.Debug("Collection %s: %d hits", collection, len(hits[i]))
		for _, hit := range hits[i] {
			candidates = append(candidates, candidate{point: hit.Point, similarity: hit.Similarity})
		}
	}

	if failedLegs == len(collections) {
		return nil, fmt.Errorf("%w: all collection searches failed: %w",
			domain.ErrCollectionUnavailable, errs[0])
	}
	if failedLegs > 0 {
		response.Degradations = append(response.Degradations, domain.DegradedSingleCollection)
	}

	return candidates, nil
}

// rerank orders candidates with the cross-encoder score when possible
// and falls back to the shortlist similarity when the reranker is
// absent or fails. The final order never depends on which collection a
// candidate came from.
func (s *QueryService) rerank(
	ctx context.Context, query string, candidates []candidate, response *domain.QueryResponse,
) []domain.SearchResult {
	results := make([]domain.SearchResult, len(candidates))
	for i, c := range candidates {
		results[i] = domain.SearchResult{
			Unit: domain.Unit{
				ID:         c.point.ID,
				Tag:        c.point.Tag,
				Content:    c.point.Content,
				DocumentID: c.point.DocumentID,
				Metadata:   c.point.Metadata,
			},
			Similarity:  c.similarity,
			ContentType: c.point.Tag,
		}
	}

	scored := false
	if s.reranker != nil && len(results) > 0 {
		passages := make([]string, len(candidates))
		for i, c := range candidates {
			passages[i] = c.point.Content
		}

		scores, err := s.reranker.Rerank(ctx, query, passages)
		if err != nil || len(scores) != len(results) {
			logger.Warn("Reranker unavailable, ordering by similarity: %v", err)
		} else {
			for i := range results {
				results[i].Score = scores[i]
			}
			scored = true
		}
	}

	if !scored && len(results) > 0 {
		response.Degradations = append(response.Degradations, domain.DegradedSimilarityOrder)
		for i := range results {
			results[i].Score = results[i].Similarity
		}
	}

	// Rerank score decides; similarity then unit ID break ties so the
	// order is deterministic.
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		if results[i].Similarity != results[j].Similarity {
			return results[i].Similarity > results[j].Similarity
		}
		return results[i].Unit.ID < results[j].Unit.ID
	})

	return results
}
