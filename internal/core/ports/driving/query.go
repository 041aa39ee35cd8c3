package driving

import (
	"context"

	"github.com/strata-labs/strata/internal/core/domain"
)

// QueryService answers natural-language queries over both collections.
type QueryService interface {
	// Search fans the query out across the text and tables collections,
	// reranks the combined candidates and returns one ranked, typed
	// list. Degraded paths are reported in the response, never as
	// silent empty results.
	Search(ctx context.Context, query string, opts domain.SearchOptions) (*domain.QueryResponse, error)
}
