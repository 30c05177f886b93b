// Package database defines the database store port (interface).
package database

import (
	"context"

	"github.com/reachforge/reachforge/internal/domain/brandguide"
	"github.com/reachforge/reachforge/internal/domain/capability"
	"github.com/reachforge/reachforge/internal/domain/content"
	"github.com/reachforge/reachforge/internal/domain/outreach"
	"github.com/reachforge/reachforge/internal/domain/prospect"
	"github.com/reachforge/reachforge/internal/domain/user"
	"github.com/reachforge/reachforge/internal/domain/venture"
)

// Store is the port interface for database operations. Upsert methods
// report whether the row was newly inserted so handlers can
// discriminate 201 from 200 without comparing timestamps.
type Store interface {
	// Users
	CreateUser(ctx context.Context, u *user.User) error
	GetUser(ctx context.Context, id string) (*user.User, error)
	GetUserByEmail(ctx context.Context, email string) (*user.User, error)

	// Sessions
	CreateSession(ctx context.Context, s *user.Session) error
	GetSessionByTokenHash(ctx context.Context, tokenHash string) (*user.Session, error)
	DeleteSession(ctx context.Context, id string) error
	DeleteExpiredSessions(ctx context.Context) (int64, error)

	// Ventures
	ListVentures(ctx context.Context, userID string) ([]venture.Venture, error)
	GetVenture(ctx context.Context, id string) (*venture.Venture, error)
	CreateVenture(ctx context.Context, userID string, req *venture.CreateRequest) (*venture.Venture, error)
	UpdateVenture(ctx context.Context, v *venture.Venture) error
	DeleteVenture(ctx context.Context, id string) error

	// Brand guides (one per venture)
	GetBrandGuide(ctx context.Context, ventureID string) (*brandguide.BrandGuide, error)
	UpsertBrandGuide(ctx context.Context, ventureID string, req *brandguide.UpsertRequest) (*brandguide.BrandGuide, bool, error)

	// Content drafts
	ListDrafts(ctx context.Context, userID string) ([]content.Draft, error)
	GetDraft(ctx context.Context, id string) (*content.Draft, error)
	CreateDraft(ctx context.Context, userID string, req *content.CreateRequest) (*content.Draft, error)
	UpdateDraft(ctx context.Context, d *content.Draft) error
	DeleteDraft(ctx context.Context, id string) error

	// Prospects
	ListProspects(ctx context.Context, userID string) ([]prospect.Prospect, error)
	ListProspectsByVenture(ctx context.Context, ventureID string) ([]prospect.Prospect, error)
	GetProspect(ctx context.Context, id string) (*prospect.Prospect, error)
	CreateProspect(ctx context.Context, req *prospect.CreateRequest) (*prospect.Prospect, error)
	DeleteProspect(ctx context.Context, id string) error

	// Outreach tasks
	ListOutreachTasks(ctx context.Context, prospectID string) ([]outreach.Task, error)
	CreateOutreachTask(ctx context.Context, prospectID string, req *outreach.CreateRequest) (*outreach.Task, error)

	// TC3D reference data
	ListTools(ctx context.Context) ([]capability.Tool, error)
	ListTiers(ctx context.Context) ([]capability.Tier, error)
	ListCatalogTasks(ctx context.Context) ([]capability.Task, error)
	ListCapabilityScores(ctx context.Context, userID string) ([]capability.Score, error)
	UpsertCapabilityScore(ctx context.Context, userID string, req *capability.UpsertRequest) (*capability.Score, bool, error)
}
