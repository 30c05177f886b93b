package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/reachforge/reachforge/internal/domain/prospect"
)

const prospectColumns = `id, venture_id, linkedin_url, name, title, company, profile_summary, engagement, scores, discovered_at, updated_at`

func scanProspect(row scannable) (prospect.Prospect, error) {
	var p prospect.Prospect
	var engagementJSON, scoresJSON []byte
	err := row.Scan(&p.ID, &p.VentureID, &p.LinkedInURL, &p.Name, &p.Title,
		&p.Company, &p.ProfileSummary, &engagementJSON, &scoresJSON,
		&p.DiscoveredAt, &p.UpdatedAt)
	if err != nil {
		return prospect.Prospect{}, err
	}
	if engagementJSON != nil {
		_ = json.Unmarshal(engagementJSON, &p.Engagement)
	}
	if scoresJSON != nil {
		_ = json.Unmarshal(scoresJSON, &p.Scores)
	}
	return p, nil
}

func (s *Store) listProspects(ctx context.Context, where string, arg any) ([]prospect.Prospect, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+prospectColumns+` FROM prospects WHERE `+where+`
		 ORDER BY COALESCE((scores->>'criticality')::double precision, 0) DESC, discovered_at DESC`, arg)
	if err != nil {
		return nil, fmt.Errorf("list prospects: %w", err)
	}
	defer rows.Close()

	var prospects []prospect.Prospect
	for rows.Next() {
		p, err := scanProspect(rows)
		if err != nil {
			return nil, fmt.Errorf("scan prospect: %w", err)
		}
		prospects = append(prospects, p)
	}
	return orEmpty(prospects), rows.Err()
}

func (s *Store) ListProspects(ctx context.Context, userID string) ([]prospect.Prospect, error) {
	return s.listProspects(ctx,
		`venture_id IN (SELECT id FROM ventures WHERE user_id = $1)`, userID)
}

func (s *Store) ListProspectsByVenture(ctx context.Context, ventureID string) ([]prospect.Prospect, error) {
	return s.listProspects(ctx, `venture_id = $1`, ventureID)
}

func (s *Store) GetProspect(ctx context.Context, id string) (*prospect.Prospect, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+prospectColumns+` FROM prospects WHERE id = $1`, id)

	p, err := scanProspect(row)
	if err != nil {
		return nil, notFoundWrap(err, "get prospect %s", id)
	}
	return &p, nil
}

func (s *Store) CreateProspect(ctx context.Context, req *prospect.CreateRequest) (*prospect.Prospect, error) {
	now := time.Now().UTC()
	p := prospect.Prospect{
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

	engagementJSON, err := json.Marshal(p.Engagement)
	if err != nil {
		return nil, fmt.Errorf("marshal engagement: %w", err)
	}
	scoresJSON, err := json.Marshal(p.Scores)
	if err != nil {
		return nil, fmt.Errorf("marshal scores: %w", err)
	}

	_, err = s.pool.Exec(ctx, `
		INSERT INTO prospects (id, venture_id, linkedin_url, name, title, company, profile_summary, engagement, scores, discovered_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		p.ID, p.VentureID, p.LinkedInURL, p.Name, p.Title, p.Company,
		p.ProfileSummary, engagementJSON, scoresJSON, p.DiscoveredAt, p.UpdatedAt,
	)
	if err != nil {
		return nil, conflictWrap(err, "create prospect %q", req.LinkedInURL)
	}
	return &p, nil
}

func (s *Store) DeleteProspect(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM prospects WHERE id = $1`, id)
	return execExpectOne(tag, err, "delete prospect %s", id)
}
