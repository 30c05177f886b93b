package service

import (
	"context"

	"github.com/reachforge/reachforge/internal/domain/brandguide"
	"github.com/reachforge/reachforge/internal/port/database"
)

// BrandGuideService manages the one-per-venture brand guide.
type BrandGuideService struct {
	store    database.Store
	ventures *VentureService
}

// NewBrandGuideService creates a new brand guide service.
func NewBrandGuideService(store database.Store, ventures *VentureService) *BrandGuideService {
	return &BrandGuideService{store: store, ventures: ventures}
}

// Get returns the guide for a venture the caller owns.
func (s *BrandGuideService) Get(ctx context.Context, userID, ventureID string) (*brandguide.BrandGuide, error) {
	if _, err := s.ventures.Get(ctx, userID, ventureID); err != nil {
		return nil, err
	}
	return s.store.GetBrandGuide(ctx, ventureID)
}

// Upsert creates or fully replaces the venture's guide. The returned
// flag reports whether a new row was inserted.
func (s *BrandGuideService) Upsert(ctx context.Context, userID, ventureID string, req *brandguide.UpsertRequest) (*brandguide.BrandGuide, bool, error) {
	if err := req.Validate(); err != nil {
		return nil, false, err
	}
	if _, err := s.ventures.Get(ctx, userID, ventureID); err != nil {
		return nil, false, err
	}
	return s.store.UpsertBrandGuide(ctx, ventureID, req)
}
