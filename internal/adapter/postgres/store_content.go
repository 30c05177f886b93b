package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/reachforge/reachforge/internal/domain/content"
)

const draftColumns = `id, user_id, venture_id, topic, original_text, edited_text, ai_confidence_score, status, scheduled_for, hashtags, approved_at, published_at, created_at, updated_at`

func scanDraft(row scannable) (content.Draft, error) {
	var d content.Draft
	err := row.Scan(&d.ID, &d.UserID, &d.VentureID, &d.Topic, &d.OriginalText,
		&d.EditedText, &d.AIConfidenceScore, &d.Status, &d.ScheduledFor,
		&d.Hashtags, &d.ApprovedAt, &d.PublishedAt, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return content.Draft{}, err
	}
	d.Hashtags = orEmpty(d.Hashtags)
	return d, nil
}

func (s *Store) ListDrafts(ctx context.Context, userID string) ([]content.Draft, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+draftColumns+` FROM content_drafts WHERE user_id = $1 ORDER BY created_at DESC`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("list drafts: %w", err)
	}
	defer rows.Close()

	var drafts []content.Draft
	for rows.Next() {
		d, err := scanDraft(rows)
		if err != nil {
			return nil, fmt.Errorf("scan draft: %w", err)
		}
		drafts = append(drafts, d)
	}
	return orEmpty(drafts), rows.Err()
}

func (s *Store) GetDraft(ctx context.Context, id string) (*content.Draft, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+draftColumns+` FROM content_drafts WHERE id = $1`, id)

	d, err := scanDraft(row)
	if err != nil {
		return nil, notFoundWrap(err, "get draft %s", id)
	}
	return &d, nil
}

func (s *Store) CreateDraft(ctx context.Context, userID string, req *content.CreateRequest) (*content.Draft, error) {
	now := time.Now().UTC()
	d := content.Draft{
		ID:                uuid.NewString(),
		UserID:            userID,
		VentureID:         req.VentureID,
		Topic:             req.Topic,
		OriginalText:      req.OriginalText,
		AIConfidenceScore: req.AIConfidenceScore,
		Status:            content.StatusPendingValidation,
		ScheduledFor:      req.ScheduledFor,
		Hashtags:          orEmpty(req.Hashtags),
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	_, err := s.pool.Exec(ctx, `
		INSERT INTO content_drafts (id, user_id, venture_id, topic, original_text, edited_text, ai_confidence_score, status, scheduled_for, hashtags, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		d.ID, d.UserID, d.VentureID, d.Topic, d.OriginalText, d.EditedText,
		d.AIConfidenceScore, d.Status, d.ScheduledFor, pgTextArray(d.Hashtags),
		d.CreatedAt, d.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("create draft: %w", err)
	}
	return &d, nil
}

func (s *Store) UpdateDraft(ctx context.Context, d *content.Draft) error {
	d.UpdatedAt = time.Now().UTC()
	tag, err := s.pool.Exec(ctx, `
		UPDATE content_drafts SET topic = $2, edited_text = $3, status = $4, scheduled_for = $5, hashtags = $6, approved_at = $7, published_at = $8, updated_at = $9
		WHERE id = $1`,
		d.ID, d.Topic, d.EditedText, d.Status, d.ScheduledFor,
		pgTextArray(d.Hashtags), d.ApprovedAt, d.PublishedAt, d.UpdatedAt,
	)
	return execExpectOne(tag, err, "update draft %s", d.ID)
}

func (s *Store) DeleteDraft(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM content_drafts WHERE id = $1`, id)
	return execExpectOne(tag, err, "delete draft %s", id)
}
