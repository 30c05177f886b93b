// Package capability defines the TC3D reference catalogs (tools, tiers,
// tasks) and the per-user capability score.
package capability

import (
	"fmt"
	"strings"
	"time"

	"github.com/reachforge/reachforge/internal/domain"
)

// Tool is a global catalog entry describing a professional tool.
type Tool struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
}

// Tier is a global catalog entry describing a proficiency tier.
type Tier struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	Description string `json:"description,omitempty"`
}

// Task is a global catalog entry describing a tool-related task.
type Task struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	ToolID   string `json:"tool_id,omitempty"`
}

// Source identifies how a capability score was derived.
type Source string

const (
	SourceGitHubAnalysis Source = "github_analysis"
	SourceSelfReported   Source = "self_reported"
	SourceEngagement     Source = "engagement"
	SourceManual         Source = "manual"
)

// Sources lists all allowed score sources.
var Sources = []Source{SourceGitHubAnalysis, SourceSelfReported, SourceEngagement, SourceManual}

// Valid reports whether s is one of the allowed sources.
func (s Source) Valid() bool {
	for _, v := range Sources {
		if s == v {
			return true
		}
	}
	return false
}

// Score is a per-user capability rating keyed by (user, tool, optional
// task). Writes go through an upsert on that key.
type Score struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	ToolID    string    `json:"tool_id"`
	TaskID    string    `json:"task_id,omitempty"`
	Score     float64   `json:"score"`
	Source    Source    `json:"source"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UpsertRequest holds the fields for creating or updating a capability score.
type UpsertRequest struct {
	ToolID string  `json:"tool_id"`
	TaskID string  `json:"task_id"`
	Score  float64 `json:"score"`
	Source Source  `json:"source"`
}

// Validate checks the upsert request.
func (r *UpsertRequest) Validate() error {
	if r.ToolID == "" {
		return fmt.Errorf("tool_id is required: %w", domain.ErrValidation)
	}
	if r.Score < 0 || r.Score > 1 {
		return fmt.Errorf("score must be between 0 and 1: %w", domain.ErrValidation)
	}
	if r.Source == "" {
		r.Source = SourceManual
	}
	if !r.Source.Valid() {
		return fmt.Errorf("source must be one of %s: %w", sourceList(), domain.ErrValidation)
	}
	return nil
}

func sourceList() string {
	names := make([]string, len(Sources))
	for i, s := range Sources {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}
