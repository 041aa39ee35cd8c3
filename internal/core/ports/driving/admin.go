package driving

import (
	"context"

	"github.com/strata-labs/strata/internal/core/domain"
)

// AdminService exposes collection maintenance operations.
type AdminService interface {
	// Stats reports name, point count and status for both collections.
	Stats(ctx context.Context) ([]domain.CollectionInfo, error)

	// Reset clears both collections and confirms each one separately.
	// Resetting one collection never affects the other.
	Reset(ctx context.Context) ([]domain.ResetConfirmation, error)
}
