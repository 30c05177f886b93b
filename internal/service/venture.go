package service

import (
	"context"
	"fmt"

	"github.com/reachforge/reachforge/internal/domain"
	"github.com/reachforge/reachforge/internal/domain/venture"
	"github.com/reachforge/reachforge/internal/port/database"
)

// VentureService manages ventures. Every operation is scoped to the
// calling user; touching another user's venture returns ErrForbidden.
type VentureService struct {
	store database.Store
}

// NewVentureService creates a new venture service.
func NewVentureService(store database.Store) *VentureService {
	return &VentureService{store: store}
}

// List returns the caller's ventures, newest first.
func (s *VentureService) List(ctx context.Context, userID string) ([]venture.Venture, error) {
	return s.store.ListVentures(ctx, userID)
}

// Get returns one venture after an ownership check.
func (s *VentureService) Get(ctx context.Context, userID, id string) (*venture.Venture, error) {
	v, err := s.store.GetVenture(ctx, id)
	if err != nil {
		return nil, err
	}
	if v.UserID != userID {
		return nil, fmt.Errorf("venture %s: %w", id, domain.ErrForbidden)
	}
	return v, nil
}

// Create validates and stores a new venture for the caller.
func (s *VentureService) Create(ctx context.Context, userID string, req *venture.CreateRequest) (*venture.Venture, error) {
	if err := venture.ValidateCreateRequest(req); err != nil {
		return nil, err
	}
	return s.store.CreateVenture(ctx, userID, req)
}

// Update applies a partial update. Nil fields keep their stored values.
func (s *VentureService) Update(ctx context.Context, userID, id string, req *venture.UpdateRequest) (*venture.Venture, error) {
	if err := venture.ValidateUpdateRequest(req); err != nil {
		return nil, err
	}

	v, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		v.Name = *req.Name
	}
	if req.Industry != nil {
		v.Industry = *req.Industry
	}
	if req.Description != nil {
		v.Description = *req.Description
	}
	if req.TargetAudience != nil {
		v.TargetAudience = *req.TargetAudience
	}
	if req.UniqueValueProposition != nil {
		v.UniqueValueProposition = *req.UniqueValueProposition
	}
	if req.KeyOfferings != nil {
		v.KeyOfferings = *req.KeyOfferings
	}

	if err := s.store.UpdateVenture(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

// Delete removes a venture. Brand guide and prospects cascade in the store.
func (s *VentureService) Delete(ctx context.Context, userID, id string) error {
	if _, err := s.Get(ctx, userID, id); err != nil {
		return err
	}
	return s.store.DeleteVenture(ctx, id)
}
