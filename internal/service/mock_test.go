package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/reachforge/reachforge/internal/domain"
	"github.com/reachforge/reachforge/internal/domain/brandguide"
	"github.com/reachforge/reachforge/internal/domain/capability"
	"github.com/reachforge/reachforge/internal/domain/content"
	"github.com/reachforge/reachforge/internal/domain/outreach"
	"github.com/reachforge/reachforge/internal/domain/prospect"
	"github.com/reachforge/reachforge/internal/domain/user"
	"github.com/reachforge/reachforge/internal/domain/venture"
)

// mockStore is an in-memory database.Store for service tests.
type mockStore struct {
	mu sync.Mutex

	users     map[string]*user.User
	sessions  map[string]*user.Session
	ventures  map[string]*venture.Venture
	guides    map[string]*brandguide.BrandGuide // keyed by venture ID
	drafts    map[string]*content.Draft
	prospects map[string]*prospect.Prospect
	tasks     map[string]*outreach.Task
	scores    map[string]*capability.Score // keyed by user|tool|task
}

func newMockStore() *mockStore {
	return &mockStore{
		users:     make(map[string]*user.User),
		sessions:  make(map[string]*user.Session),
		ventures:  make(map[string]*venture.Venture),
		guides:    make(map[string]*brandguide.BrandGuide),
		drafts:    make(map[string]*content.Draft),
		prospects: make(map[string]*prospect.Prospect),
		tasks:     make(map[string]*outreach.Task),
		scores:    make(map[string]*capability.Score),
	}
}

func (m *mockStore) CreateUser(_ context.Context, u *user.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.users {
		if existing.Email == u.Email {
			return fmt.Errorf("email taken: %w", domain.ErrConflict)
		}
	}
	now := time.Now().UTC()
	u.CreatedAt, u.UpdatedAt = now, now
	cp := *u
	m.users[u.ID] = &cp
	return nil
}

func (m *mockStore) GetUser(_ context.Context, id string) (*user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", id, domain.ErrNotFound)
	}
	cp := *u
	return &cp, nil
}

func (m *mockStore) GetUserByEmail(_ context.Context, email string) (*user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("user %s: %w", email, domain.ErrNotFound)
}

func (m *mockStore) CreateSession(_ context.Context, s *user.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s.CreatedAt = time.Now().UTC()
	cp := *s
	m.sessions[s.ID] = &cp
	return nil
}

func (m *mockStore) GetSessionByTokenHash(_ context.Context, tokenHash string) (*user.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.sessions {
		if s.TokenHash == tokenHash {
			cp := *s
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("session: %w", domain.ErrNotFound)
}

func (m *mockStore) DeleteSession(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[id]; !ok {
		return fmt.Errorf("session %s: %w", id, domain.ErrNotFound)
	}
	delete(m.sessions, id)
	return nil
}

func (m *mockStore) DeleteExpiredSessions(_ context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	now := time.Now()
	for id, s := range m.sessions {
		if now.After(s.ExpiresAt) {
			delete(m.sessions, id)
			n++
		}
	}
	return n, nil
}

func (m *mockStore) ListVentures(_ context.Context, userID string) ([]venture.Venture, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []venture.Venture{}
	for _, v := range m.ventures {
		if v.UserID == userID {
			out = append(out, *v)
		}
	}
	return out, nil
}

func (m *mockStore) GetVenture(_ context.Context, id string) (*venture.Venture, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.ventures[id]
	if !ok {
		return nil, fmt.Errorf("venture %s: %w", id, domain.ErrNotFound)
	}
	cp := *v
	return &cp, nil
}

func (m *mockStore) CreateVenture(_ context.Context, userID string, req *venture.CreateRequest) (*venture.Venture, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, v := range m.ventures {
		if v.UserID == userID && v.Name == req.Name {
			return nil, fmt.Errorf("venture name taken: %w", domain.ErrConflict)
		}
	}
	now := time.Now().UTC()
	v := &venture.Venture{
		ID:                     uuid.NewString(),
		UserID:                 userID,
		Name:                   req.Name,
		Industry:               req.Industry,
		Description:            req.Description,
		TargetAudience:         req.TargetAudience,
		UniqueValueProposition: req.UniqueValueProposition,
		KeyOfferings:           req.KeyOfferings,
		CreatedAt:              now,
		UpdatedAt:              now,
	}
	m.ventures[v.ID] = v
	cp := *v
	return &cp, nil
}

func (m *mockStore) UpdateVenture(_ context.Context, v *venture.Venture) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.ventures[v.ID]; !ok {
		return fmt.Errorf("venture %s: %w", v.ID, domain.ErrNotFound)
	}
	v.UpdatedAt = time.Now().UTC()
	cp := *v
	m.ventures[v.ID] = &cp
	return nil
}

func (m *mockStore) DeleteVenture(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.ventures[id]; !ok {
		return fmt.Errorf("venture %s: %w", id, domain.ErrNotFound)
	}
	delete(m.ventures, id)
	delete(m.guides, id)
	return nil
}

func (m *mockStore) GetBrandGuide(_ context.Context, ventureID string) (*brandguide.BrandGuide, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	g, ok := m.guides[ventureID]
	if !ok {
		return nil, fmt.Errorf("brand guide for venture %s: %w", ventureID, domain.ErrNotFound)
	}
	cp := *g
	return &cp, nil
}

func (m *mockStore) UpsertBrandGuide(_ context.Context, ventureID string, req *brandguide.UpsertRequest) (*brandguide.BrandGuide, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now().UTC()
	existing, ok := m.guides[ventureID]
	g := &brandguide.BrandGuide{
		ID:                    uuid.NewString(),
		VentureID:             ventureID,
		Tone:                  req.Tone,
		Audience:              req.Audience,
		ContentPillars:        req.ContentPillars,
		NegativeKeywords:      req.NegativeKeywords,
		PostingFrequency:      req.PostingFrequency,
		AutoApprovalThreshold: req.AutoApprovalThreshold,
		TargetPlatforms:       req.TargetPlatforms,
		CreatedAt:             now,
		UpdatedAt:             now,
	}
	if ok {
		g.ID = existing.ID
		g.CreatedAt = existing.CreatedAt
	}
	m.guides[ventureID] = g
	cp := *g
	return &cp, !ok, nil
}

func (m *mockStore) ListDrafts(_ context.Context, userID string) ([]content.Draft, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []content.Draft{}
	for _, d := range m.drafts {
		if d.UserID == userID {
			out = append(out, *d)
		}
	}
	return out, nil
}

func (m *mockStore) GetDraft(_ context.Context, id string) (*content.Draft, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.drafts[id]
	if !ok {
		return nil, fmt.Errorf("draft %s: %w", id, domain.ErrNotFound)
	}
	cp := *d
	return &cp, nil
}

func (m *mockStore) CreateDraft(_ context.Context, userID string, req *content.CreateRequest) (*content.Draft, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now().UTC()
	d := &content.Draft{
		ID:                uuid.NewString(),
		UserID:            userID,
		VentureID:         req.VentureID,
		Topic:             req.Topic,
		OriginalText:      req.OriginalText,
		AIConfidenceScore: req.AIConfidenceScore,
		Status:            content.StatusPendingValidation,
		ScheduledFor:      req.ScheduledFor,
		Hashtags:          req.Hashtags,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	m.drafts[d.ID] = d
	cp := *d
	return &cp, nil
}

func (m *mockStore) UpdateDraft(_ context.Context, d *content.Draft) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.drafts[d.ID]; !ok {
		return fmt.Errorf("draft %s: %w", d.ID, domain.ErrNotFound)
	}
	d.UpdatedAt = time.Now().UTC()
	cp := *d
	m.drafts[d.ID] = &cp
	return nil
}

func (m *mockStore) DeleteDraft(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.drafts[id]; !ok {
		return fmt.Errorf("draft %s: %w", id, domain.ErrNotFound)
	}
	delete(m.drafts, id)
	return nil
}

func (m *mockStore) ListProspects(_ context.Context, userID string) ([]prospect.Prospect, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []prospect.Prospect{}
	for _, p := range m.prospects {
		if v, ok := m.ventures[p.VentureID]; ok && v.UserID == userID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (m *mockStore) ListProspectsByVenture(_ context.Context, ventureID string) ([]prospect.Prospect, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []prospect.Prospect{}
	for _, p := range m.prospects {
		if p.VentureID == ventureID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (m *mockStore) GetProspect(_ context.Context, id string) (*prospect.Prospect, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.prospects[id]
	if !ok {
		return nil, fmt.Errorf("prospect %s: %w", id, domain.ErrNotFound)
	}
	cp := *p
	return &cp, nil
}

func (m *mockStore) CreateProspect(_ context.Context, req *prospect.CreateRequest) (*prospect.Prospect, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.prospects {
		if p.LinkedInURL == req.LinkedInURL {
			return nil, fmt.Errorf("linkedin_url taken: %w", domain.ErrConflict)
		}
	}
	now := time.Now().UTC()
	p := &prospect.Prospect{
		ID:             uuid.NewString(),
		VentureID:      req.VentureID,
		LinkedInURL:    req.LinkedInURL,
		Name:           req.Name,
		Title:          req.Title,
		Company:        req.Company,
		ProfileSummary: req.ProfileSummary,
		Engagement:     req.Engagement,
		Scores:         req.Scores,
		DiscoveredAt:   now,
		UpdatedAt:      now,
	}
	m.prospects[p.ID] = p
	cp := *p
	return &cp, nil
}

func (m *mockStore) DeleteProspect(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.prospects[id]; !ok {
		return fmt.Errorf("prospect %s: %w", id, domain.ErrNotFound)
	}
	delete(m.prospects, id)
	return nil
}

func (m *mockStore) ListOutreachTasks(_ context.Context, prospectID string) ([]outreach.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []outreach.Task{}
	for _, t := range m.tasks {
		if t.ProspectID == prospectID {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (m *mockStore) CreateOutreachTask(_ context.Context, prospectID string, req *outreach.CreateRequest) (*outreach.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now().UTC()
	t := &outreach.Task{
		ID:               uuid.NewString(),
		ProspectID:       prospectID,
		Phase:            req.Phase,
		GeneratedMessage: req.GeneratedMessage,
		Status:           outreach.StatusPendingApproval,
		ScheduledAt:      req.ScheduledAt,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	m.tasks[t.ID] = t
	cp := *t
	return &cp, nil
}

func (m *mockStore) ListTools(_ context.Context) ([]capability.Tool, error) {
	return []capability.Tool{{ID: "tool-go", Name: "Go", Category: "language"}}, nil
}

func (m *mockStore) ListTiers(_ context.Context) ([]capability.Tier, error) {
	return []capability.Tier{{ID: "tier-practitioner", Name: "Practitioner", Category: "proficiency"}}, nil
}

func (m *mockStore) ListCatalogTasks(_ context.Context) ([]capability.Task, error) {
	return []capability.Task{{ID: "task-api-design", Name: "API design", Category: "backend", ToolID: "tool-go"}}, nil
}

func (m *mockStore) ListCapabilityScores(_ context.Context, userID string) ([]capability.Score, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []capability.Score{}
	for _, sc := range m.scores {
		if sc.UserID == userID {
			out = append(out, *sc)
		}
	}
	return out, nil
}

func (m *mockStore) UpsertCapabilityScore(_ context.Context, userID string, req *capability.UpsertRequest) (*capability.Score, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := userID + "|" + req.ToolID + "|" + req.TaskID
	now := time.Now().UTC()
	existing, ok := m.scores[key]
	sc := &capability.Score{
		ID:        uuid.NewString(),
		UserID:    userID,
		ToolID:    req.ToolID,
		TaskID:    req.TaskID,
		Score:     req.Score,
		Source:    req.Source,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if ok {
		sc.ID = existing.ID
		sc.CreatedAt = existing.CreatedAt
	}
	m.scores[key] = sc
	cp := *sc
	return &cp, !ok, nil
}
