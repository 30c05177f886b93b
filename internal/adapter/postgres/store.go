package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/reachforge/reachforge/internal/domain/venture"
)

// Store implements database.Store using PostgreSQL.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore creates a new Store backed by the given connection pool.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// --- Ventures ---

const ventureColumns = `id, user_id, name, industry, description, target_audience, unique_value_proposition, key_offerings, created_at, updated_at`

func scanVenture(row scannable) (venture.Venture, error) {
	var v venture.Venture
	err := row.Scan(&v.ID, &v.UserID, &v.Name, &v.Industry, &v.Description,
		&v.TargetAudience, &v.UniqueValueProposition, &v.KeyOfferings,
		&v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		return venture.Venture{}, err
	}
	v.KeyOfferings = orEmpty(v.KeyOfferings)
	return v, nil
}

func (s *Store) ListVentures(ctx context.Context, userID string) ([]venture.Venture, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+ventureColumns+` FROM ventures WHERE user_id = $1 ORDER BY created_at DESC`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("list ventures: %w", err)
	}
	defer rows.Close()

	var ventures []venture.Venture
	for rows.Next() {
		v, err := scanVenture(rows)
		if err != nil {
			return nil, fmt.Errorf("scan venture: %w", err)
		}
		ventures = append(ventures, v)
	}
	return orEmpty(ventures), rows.Err()
}

func (s *Store) GetVenture(ctx context.Context, id string) (*venture.Venture, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+ventureColumns+` FROM ventures WHERE id = $1`, id)

	v, err := scanVenture(row)
	if err != nil {
		return nil, notFoundWrap(err, "get venture %s", id)
	}
	return &v, nil
}

func (s *Store) CreateVenture(ctx context.Context, userID string, req *venture.CreateRequest) (*venture.Venture, error) {
	now := time.Now().UTC()
	v := venture.Venture{
		ID:                     uuid.NewString(),
		UserID:                 userID,
		Name:                   req.Name,
		Industry:               req.Industry,
		Description:            req.Description,
		TargetAudience:         req.TargetAudience,
		UniqueValueProposition: req.UniqueValueProposition,
		KeyOfferings:           orEmpty(req.KeyOfferings),
		CreatedAt:              now,
		UpdatedAt:              now,
	}

	_, err := s.pool.Exec(ctx, `
		INSERT INTO ventures (id, user_id, name, industry, description, target_audience, unique_value_proposition, key_offerings, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		v.ID, v.UserID, v.Name, v.Industry, v.Description, v.TargetAudience,
		v.UniqueValueProposition, pgTextArray(v.KeyOfferings), v.CreatedAt, v.UpdatedAt,
	)
	if err != nil {
		return nil, conflictWrap(err, "create venture %q", req.Name)
	}
	return &v, nil
}

func (s *Store) UpdateVenture(ctx context.Context, v *venture.Venture) error {
	v.UpdatedAt = time.Now().UTC()
	tag, err := s.pool.Exec(ctx, `
		UPDATE ventures SET name = $2, industry = $3, description = $4, target_audience = $5, unique_value_proposition = $6, key_offerings = $7, updated_at = $8
		WHERE id = $1`,
		v.ID, v.Name, v.Industry, v.Description, v.TargetAudience,
		v.UniqueValueProposition, pgTextArray(v.KeyOfferings), v.UpdatedAt,
	)
	if err != nil {
		return conflictWrap(err, "update venture %s", v.ID)
	}
	return execExpectOne(tag, nil, "update venture %s", v.ID)
}

func (s *Store) DeleteVenture(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM ventures WHERE id = $1`, id)
	return execExpectOne(tag, err, "delete venture %s", id)
}
