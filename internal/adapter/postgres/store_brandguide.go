package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/reachforge/reachforge/internal/domain/brandguide"
)

const brandGuideColumns = `id, venture_id, tone, audience, content_pillars, negative_keywords, posting_frequency, auto_approval_threshold, target_platforms, created_at, updated_at`

func scanBrandGuide(row scannable, extra ...any) (brandguide.BrandGuide, error) {
	var g brandguide.BrandGuide
	dest := []any{&g.ID, &g.VentureID, &g.Tone, &g.Audience, &g.ContentPillars,
		&g.NegativeKeywords, &g.PostingFrequency, &g.AutoApprovalThreshold,
		&g.TargetPlatforms, &g.CreatedAt, &g.UpdatedAt}
	dest = append(dest, extra...)
	if err := row.Scan(dest...); err != nil {
		return brandguide.BrandGuide{}, err
	}
	g.Audience = orEmpty(g.Audience)
	g.ContentPillars = orEmpty(g.ContentPillars)
	g.NegativeKeywords = orEmpty(g.NegativeKeywords)
	g.TargetPlatforms = orEmpty(g.TargetPlatforms)
	return g, nil
}

func (s *Store) GetBrandGuide(ctx context.Context, ventureID string) (*brandguide.BrandGuide, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+brandGuideColumns+` FROM brand_guides WHERE venture_id = $1`, ventureID)

	g, err := scanBrandGuide(row)
	if err != nil {
		return nil, notFoundWrap(err, "get brand guide for venture %s", ventureID)
	}
	return &g, nil
}

// UpsertBrandGuide creates or fully replaces the venture's guide. The
// inserted flag comes back from the database itself (xmax = 0 holds
// only for freshly inserted rows), not from a timestamp comparison.
func (s *Store) UpsertBrandGuide(ctx context.Context, ventureID string, req *brandguide.UpsertRequest) (*brandguide.BrandGuide, bool, error) {
	now := time.Now().UTC()
	row := s.pool.QueryRow(ctx, `
		INSERT INTO brand_guides (id, venture_id, tone, audience, content_pillars, negative_keywords, posting_frequency, auto_approval_threshold, target_platforms, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $10)
		ON CONFLICT (venture_id) DO UPDATE SET
			tone = EXCLUDED.tone,
			audience = EXCLUDED.audience,
			content_pillars = EXCLUDED.content_pillars,
			negative_keywords = EXCLUDED.negative_keywords,
			posting_frequency = EXCLUDED.posting_frequency,
			auto_approval_threshold = EXCLUDED.auto_approval_threshold,
			target_platforms = EXCLUDED.target_platforms,
			updated_at = EXCLUDED.updated_at
		RETURNING `+brandGuideColumns+`, (xmax = 0) AS inserted`,
		uuid.NewString(), ventureID, req.Tone, pgTextArray(req.Audience),
		pgTextArray(req.ContentPillars), pgTextArray(req.NegativeKeywords),
		req.PostingFrequency, req.AutoApprovalThreshold,
		pgTextArray(req.TargetPlatforms), now,
	)

	var inserted bool
	g, err := scanBrandGuide(row, &inserted)
	if err != nil {
		return nil, false, conflictWrap(err, "upsert brand guide for venture %s", ventureID)
	}
	return &g, inserted, nil
}
