package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/reachforge/reachforge/internal/domain/outreach"
)

const outreachColumns = `id, prospect_id, phase, generated_message, edited_message, status, scheduled_at, executed_at, error_message, created_at, updated_at`

func scanOutreachTask(row scannable) (outreach.Task, error) {
	var t outreach.Task
	err := row.Scan(&t.ID, &t.ProspectID, &t.Phase, &t.GeneratedMessage,
		&t.EditedMessage, &t.Status, &t.ScheduledAt, &t.ExecutedAt,
		&t.ErrorMessage, &t.CreatedAt, &t.UpdatedAt)
	return t, err
}

func (s *Store) ListOutreachTasks(ctx context.Context, prospectID string) ([]outreach.Task, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+outreachColumns+` FROM outreach_tasks WHERE prospect_id = $1 ORDER BY created_at DESC`,
		prospectID)
	if err != nil {
		return nil, fmt.Errorf("list outreach tasks: %w", err)
	}
	defer rows.Close()

	var tasks []outreach.Task
	for rows.Next() {
		t, err := scanOutreachTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scan outreach task: %w", err)
		}
		tasks = append(tasks, t)
	}
	return orEmpty(tasks), rows.Err()
}

func (s *Store) CreateOutreachTask(ctx context.Context, prospectID string, req *outreach.CreateRequest) (*outreach.Task, error) {
	now := time.Now().UTC()
	t := outreach.Task{
		ID:               uuid.NewString(),
		ProspectID:       prospectID,
		Phase:            req.Phase,
		GeneratedMessage: req.GeneratedMessage,
		Status:           outreach.StatusPendingApproval,
		ScheduledAt:      req.ScheduledAt,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	_, err := s.pool.Exec(ctx, `
		INSERT INTO outreach_tasks (id, prospect_id, phase, generated_message, edited_message, status, scheduled_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		t.ID, t.ProspectID, t.Phase, t.GeneratedMessage, t.EditedMessage,
		t.Status, t.ScheduledAt, t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("create outreach task: %w", err)
	}
	return &t, nil
}
