package service

import (
	"context"
	"fmt"

	"github.com/reachforge/reachforge/internal/domain"
	"github.com/reachforge/reachforge/internal/domain/prospect"
	"github.com/reachforge/reachforge/internal/port/database"
)

// ProspectService manages prospects. Ownership is transitive: a
// prospect belongs to whoever owns its venture.
type ProspectService struct {
	store database.Store
}

// NewProspectService creates a new prospect service.
func NewProspectService(store database.Store) *ProspectService {
	return &ProspectService{store: store}
}

// List returns prospects across all the caller's ventures, or of one
// venture when ventureID is set.
func (s *ProspectService) List(ctx context.Context, userID, ventureID string) ([]prospect.Prospect, error) {
	if ventureID == "" {
		return s.store.ListProspects(ctx, userID)
	}
	if err := s.checkVenture(ctx, userID, ventureID); err != nil {
		return nil, err
	}
	return s.store.ListProspectsByVenture(ctx, ventureID)
}

// Get returns one prospect after the transitive ownership check.
func (s *ProspectService) Get(ctx context.Context, userID, id string) (*prospect.Prospect, error) {
	p, err := s.store.GetProspect(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.checkVenture(ctx, userID, p.VentureID); err != nil {
		return nil, err
	}
	return p, nil
}

// Create validates and stores a new prospect under one of the caller's
// ventures. The linkedin_url is globally unique.
func (s *ProspectService) Create(ctx context.Context, userID string, req *prospect.CreateRequest) (*prospect.Prospect, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if err := s.checkVenture(ctx, userID, req.VentureID); err != nil {
		return nil, err
	}
	return s.store.CreateProspect(ctx, req)
}

// Delete removes a prospect and, via cascade, its outreach tasks.
func (s *ProspectService) Delete(ctx context.Context, userID, id string) error {
	if _, err := s.Get(ctx, userID, id); err != nil {
		return err
	}
	return s.store.DeleteProspect(ctx, id)
}

func (s *ProspectService) checkVenture(ctx context.Context, userID, ventureID string) error {
	v, err := s.store.GetVenture(ctx, ventureID)
	if err != nil {
		return err
	}
	if v.UserID != userID {
		return fmt.Errorf("venture %s: %w", ventureID, domain.ErrForbidden)
	}
	return nil
}
