package services

import (
	"context"

	"github.com/strata-labs/strata/internal/core/domain"
	"github.com/strata-labs/strata/internal/core/ports/driven"
	"github.com/strata-labs/strata/internal/core/ports/driving"
	"github.com/strata-labs/strata/internal/logger"
)

// Ensure AdminService implements the interface.
var _ driving.AdminService = (*AdminService)(nil)

// AdminService reports and resets the two collections. Each collection
// is handled on its own so a failure in one never masks the other.
type AdminService struct {
	store driven.VectorStore
}

// NewAdminService creates a new admin service.
func NewAdminService(store driven.VectorStore) *AdminService {
	return &AdminService{store: store}
}

// Stats returns name, point count and status per collection.
// An unreachable collection reports its error as status instead of
// failing the whole call.
func (s *AdminService) Stats(ctx context.Context) ([]domain.CollectionInfo, error) {
	infos := make([]domain.CollectionInfo, 0, 2)

	for _, collection := range domain.Collections() {
		count, err := s.store.Count(ctx, collection)
		if err != nil {
			logger.Warn("Count for %s failed: %v", collection, err)
			infos = append(infos, domain.CollectionInfo{
				Name:   collection,
				Status: err.Error(),
			})
			continue
		}
		infos = append(infos, domain.CollectionInfo{
			Name:   collection,
			Points: count,
			Status: "ok",
		})
	}

	return infos, nil
}

// Reset clears both collections and confirms each one separately.
// Resetting an already-empty collection succeeds; one collection's
// failure never prevents clearing the other.
func (s *AdminService) Reset(ctx context.Context) ([]domain.ResetConfirmation, error) {
	confirmations := make([]domain.ResetConfirmation, 0, 2)

	for _, collection := range domain.Collections() {
		if err := s.store.Reset(ctx, collection); err != nil {
			logger.Warn("Reset of %s failed: %v", collection, err)
			confirmations = append(confirmations, domain.ResetConfirmation{
				Name:  collection,
				Error: err.Error(),
			})
			continue
		}
		logger.Info("Collection %s cleared", collection)
		confirmations = append(confirmations, domain.ResetConfirmation{
			Name:    collection,
			Cleared: true,
		})
	}

	return confirmations, nil
}
