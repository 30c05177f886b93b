package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/reachforge/reachforge/internal/domain/capability"
)

// --- TC3D reference catalogs ---

func (s *Store) ListTools(ctx context.Context) ([]capability.Tool, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, name, category FROM tc3d_tools ORDER BY category, name`)
	if err != nil {
		return nil, fmt.Errorf("list tools: %w", err)
	}
	defer rows.Close()

	var tools []capability.Tool
	for rows.Next() {
		var t capability.Tool
		if err := rows.Scan(&t.ID, &t.Name, &t.Category); err != nil {
			return nil, fmt.Errorf("scan tool: %w", err)
		}
		tools = append(tools, t)
	}
	return orEmpty(tools), rows.Err()
}

func (s *Store) ListTiers(ctx context.Context) ([]capability.Tier, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, name, category, description FROM tc3d_tiers ORDER BY category, name`)
	if err != nil {
		return nil, fmt.Errorf("list tiers: %w", err)
	}
	defer rows.Close()

	var tiers []capability.Tier
	for rows.Next() {
		var t capability.Tier
		if err := rows.Scan(&t.ID, &t.Name, &t.Category, &t.Description); err != nil {
			return nil, fmt.Errorf("scan tier: %w", err)
		}
		tiers = append(tiers, t)
	}
	return orEmpty(tiers), rows.Err()
}

func (s *Store) ListCatalogTasks(ctx context.Context) ([]capability.Task, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, name, category, tool_id FROM tc3d_tasks ORDER BY category, name`)
	if err != nil {
		return nil, fmt.Errorf("list catalog tasks: %w", err)
	}
	defer rows.Close()

	var tasks []capability.Task
	for rows.Next() {
		var t capability.Task
		if err := rows.Scan(&t.ID, &t.Name, &t.Category, &t.ToolID); err != nil {
			return nil, fmt.Errorf("scan catalog task: %w", err)
		}
		tasks = append(tasks, t)
	}
	return orEmpty(tasks), rows.Err()
}

// --- Capability scores ---

const scoreColumns = `id, user_id, tool_id, task_id, score, source, created_at, updated_at`

func (s *Store) ListCapabilityScores(ctx context.Context, userID string) ([]capability.Score, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+scoreColumns+` FROM capability_scores WHERE user_id = $1 ORDER BY tool_id, task_id`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("list capability scores: %w", err)
	}
	defer rows.Close()

	var scores []capability.Score
	for rows.Next() {
		var sc capability.Score
		if err := rows.Scan(&sc.ID, &sc.UserID, &sc.ToolID, &sc.TaskID,
			&sc.Score, &sc.Source, &sc.CreatedAt, &sc.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan capability score: %w", err)
		}
		scores = append(scores, sc)
	}
	return orEmpty(scores), rows.Err()
}

// UpsertCapabilityScore creates or updates the score for the
// (user, tool, task) key. task_id is stored as an empty string rather
// than NULL so the unique constraint covers tool-level scores too.
func (s *Store) UpsertCapabilityScore(ctx context.Context, userID string, req *capability.UpsertRequest) (*capability.Score, bool, error) {
	now := time.Now().UTC()
	row := s.pool.QueryRow(ctx, `
		INSERT INTO capability_scores (id, user_id, tool_id, task_id, score, source, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
		ON CONFLICT (user_id, tool_id, task_id) DO UPDATE SET
			score = EXCLUDED.score,
			source = EXCLUDED.source,
			updated_at = EXCLUDED.updated_at
		RETURNING `+scoreColumns+`, (xmax = 0) AS inserted`,
		uuid.NewString(), userID, req.ToolID, req.TaskID, req.Score, req.Source, now,
	)

	var sc capability.Score
	var inserted bool
	err := row.Scan(&sc.ID, &sc.UserID, &sc.ToolID, &sc.TaskID, &sc.Score,
		&sc.Source, &sc.CreatedAt, &sc.UpdatedAt, &inserted)
	if err != nil {
		return nil, false, fmt.Errorf("upsert capability score: %w", err)
	}
	return &sc, inserted, nil
}
