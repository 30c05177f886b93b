// Package prospect defines the Prospect domain entity.
package prospect

import (
	"fmt"
	"strings"
	"time"

	"github.com/reachforge/reachforge/internal/domain"
)

// Scores holds the six engagement dimensions a prospect is rated on.
// Each score is a fraction in [0,1].
type Scores struct {
	Criticality float64 `json:"criticality"`
	Relevance   float64 `json:"relevance"`
	Reach       float64 `json:"reach"`
	Proximity   float64 `json:"proximity"`
	Reciprocity float64 `json:"reciprocity"`
	GapFill     float64 `json:"gap_fill"`
}

// EngagementMetrics holds observed LinkedIn activity numbers.
type EngagementMetrics struct {
	Followers   int `json:"followers"`
	AvgLikes    int `json:"avg_likes"`
	AvgComments int `json:"avg_comments"`
}

// Prospect represents a tracked external contact associated with a
// venture (and transitively owned by that venture's owner). The
// linkedin_url is globally unique.
type Prospect struct {
	ID             string            `json:"id"`
	VentureID      string            `json:"venture_id"`
	LinkedInURL    string            `json:"linkedin_url"`
	Name           string            `json:"name"`
	Title          string            `json:"title,omitempty"`
	Company        string            `json:"company,omitempty"`
	ProfileSummary string            `json:"profile_summary,omitempty"`
	Engagement     EngagementMetrics `json:"engagement"`
	Scores         Scores            `json:"scores"`
	DiscoveredAt   time.Time         `json:"discovered_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
}

// CreateRequest holds the fields needed to track a prospect.
type CreateRequest struct {
	VentureID      string            `json:"venture_id"`
	LinkedInURL    string            `json:"linkedin_url"`
	Name           string            `json:"name"`
	Title          string            `json:"title"`
	Company        string            `json:"company"`
	ProfileSummary string            `json:"profile_summary"`
	Engagement     EngagementMetrics `json:"engagement"`
	Scores         Scores            `json:"scores"`
}

// Validate checks a prospect creation request.
func (r *CreateRequest) Validate() error {
	if r.VentureID == "" {
		return fmt.Errorf("venture_id is required: %w", domain.ErrValidation)
	}
	if strings.TrimSpace(r.Name) == "" {
		return fmt.Errorf("name is required: %w", domain.ErrValidation)
	}
	if strings.TrimSpace(r.LinkedInURL) == "" {
		return fmt.Errorf("linkedin_url is required: %w", domain.ErrValidation)
	}
	if !strings.Contains(r.LinkedInURL, "linkedin.com") {
		return fmt.Errorf("linkedin_url must be a linkedin.com URL: %w", domain.ErrValidation)
	}
	return r.Scores.Validate()
}

// Validate checks that every score stays in [0,1].
func (s *Scores) Validate() error {
	for _, dim := range []struct {
		name  string
		value float64
	}{
		{"criticality", s.Criticality},
		{"relevance", s.Relevance},
		{"reach", s.Reach},
		{"proximity", s.Proximity},
		{"reciprocity", s.Reciprocity},
		{"gap_fill", s.GapFill},
	} {
		if dim.value < 0 || dim.value > 1 {
			return fmt.Errorf("%s score must be between 0 and 1: %w", dim.name, domain.ErrValidation)
		}
	}
	return nil
}
