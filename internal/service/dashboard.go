package service

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/reachforge/reachforge/internal/domain/content"
	"github.com/reachforge/reachforge/internal/domain/prospect"
	"github.com/reachforge/reachforge/internal/domain/venture"
	"github.com/reachforge/reachforge/internal/port/database"
)

// DashboardSummary aggregates the caller's ventures, drafts, and
// prospects for the dashboard's first render.
type DashboardSummary struct {
	Ventures  []venture.Venture   `json:"ventures"`
	Drafts    []content.Draft     `json:"drafts"`
	Prospects []prospect.Prospect `json:"prospects"`

	Counts struct {
		Ventures       int                    `json:"ventures"`
		DraftsByStatus map[content.Status]int `json:"drafts_by_status"`
		Prospects      int                    `json:"prospects"`
	} `json:"counts"`
}

// DashboardService builds the summary payload.
type DashboardService struct {
	store database.Store
}

// NewDashboardService creates a new dashboard service.
func NewDashboardService(store database.Store) *DashboardService {
	return &DashboardService{store: store}
}

// Summary fans out the three independent list queries concurrently and
// joins the results.
func (s *DashboardService) Summary(ctx context.Context, userID string) (*DashboardSummary, error) {
	var summary DashboardSummary

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		ventures, err := s.store.ListVentures(gctx, userID)
		if err != nil {
			return err
		}
		summary.Ventures = ventures
		return nil
	})
	g.Go(func() error {
		drafts, err := s.store.ListDrafts(gctx, userID)
		if err != nil {
			return err
		}
		summary.Drafts = drafts
		return nil
	})
	g.Go(func() error {
		prospects, err := s.store.ListProspects(gctx, userID)
		if err != nil {
			return err
		}
		summary.Prospects = prospects
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	summary.Counts.Ventures = len(summary.Ventures)
	summary.Counts.Prospects = len(summary.Prospects)
	summary.Counts.DraftsByStatus = make(map[content.Status]int)
	for _, d := range summary.Drafts {
		summary.Counts.DraftsByStatus[d.Status]++
	}
	return &summary, nil
}
