package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/strata-labs/strata/internal/core/domain"
	"github.com/strata-labs/strata/internal/core/ports/driven"
	"github.com/strata-labs/strata/internal/logger"
)

// defaultRouteWorkers bounds concurrent embedding calls per batch.
const defaultRouteWorkers = 4

// IndexRouter embeds units and writes each into the collection
// matching its tag. Both collection handles live behind one injected
// store; the router never touches a collection a unit does not belong
// to.
type IndexRouter struct {
	embedder driven.EmbeddingService
	store    driven.VectorStore
	workers  int
}

// NewIndexRouter creates a new index router.
func NewIndexRouter(embedder driven.EmbeddingService, store driven.VectorStore) *IndexRouter {
	return &IndexRouter{
		embedder: embedder,
		store:    store,
		workers:  defaultRouteWorkers,
	}
}

// Route embeds one unit and upserts it into its collection.
// Embedding or store failure yields domain.ErrIndexUnavailable with
// the cause attached.
func (r *IndexRouter) Route(ctx context.Context, unit domain.Unit) error {
	if !unit.Tag.Valid() {
		return fmt.Errorf("%w: unknown tag %q", domain.ErrInvalidInput, unit.Tag)
	}
	if r.embedder == nil {
		return fmt.Errorf("%w: %w", domain.ErrIndexUnavailable, domain.ErrEmbeddingUnavailable)
	}

	embedding := unit.Embedding
	if embedding == nil {
		var err error
		embedding, err = r.embedder.Embed(ctx, unit.Content)
		if err != nil {
			return fmt.Errorf("%w: embed unit %s: %w", domain.ErrIndexUnavailable, unit.ID, err)
		}
	}

	collection := domain.CollectionFor(unit.Tag)
	point := driven.Point{
		ID:         unit.ID,
		Embedding:  embedding,
		Content:    unit.Content,
		Tag:        unit.Tag,
		DocumentID: unit.DocumentID,
		Metadata:   unit.Metadata,
	}

	if err := r.store.Upsert(ctx, collection, point); err != nil {
		return fmt.Errorf("%w: upsert unit %s into %s: %w", domain.ErrIndexUnavailable, unit.ID, collection, err)
	}

	return nil
}

// RouteBatch routes all units of one document. Units are independent,
// so they embed and store in parallel with a bounded worker count, and
// any subset may fail without blocking the rest. Returns indexed and
// failed counts; already-written units are never rolled back.
func (r *IndexRouter) RouteBatch(ctx context.Context, units []domain.Unit) (indexed, failed int) {
	if len(units) == 0 {
		return 0, 0
	}

	workers := r.workers
	if workers > len(units) {
		workers = len(units)
	}

	var (
		mu   sync.Mutex
		wg   sync.WaitGroup
		jobs = make(chan domain.Unit)
	)

	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for unit := range jobs {
				if err := r.Route(ctx, unit); err != nil {
					logger.Warn("Unit %s not indexed: %v", unit.ID, err)
					mu.Lock()
					failed++
					mu.Unlock()
					continue
				}
				mu.Lock()
				indexed++
				mu.Unlock()
			}
		}()
	}

	dispatched := 0
dispatch:
	for _, unit := range units {
		select {
		case <-ctx.Done():
			// Committed writes stay committed; units never dispatched
			// count as failed so the report stays truthful.
			break dispatch
		case jobs <- unit:
			dispatched++
		}
	}
	close(jobs)
	wg.Wait()

	failed += len(units) - dispatched
	return indexed, failed
}
