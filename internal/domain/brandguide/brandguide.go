// Package brandguide defines the per-venture brand guide entity.
package brandguide

import (
	"fmt"
	"strings"
	"time"

	"github.com/reachforge/reachforge/internal/domain"
)

// Tone is the writing voice applied to generated content.
type Tone string

const (
	ToneTechnical      Tone = "technical"
	ToneConversational Tone = "conversational"
	ToneAuthoritative  Tone = "authoritative"
	ToneCasual         Tone = "casual"
)

// Tones lists all allowed tone values, used in validation messages.
var Tones = []Tone{ToneTechnical, ToneConversational, ToneAuthoritative, ToneCasual}

// Valid reports whether t is one of the allowed tones.
func (t Tone) Valid() bool {
	for _, v := range Tones {
		if t == v {
			return true
		}
	}
	return false
}

// BrandGuide holds the content rules for one venture. There is at most
// one guide per venture; writes go through an upsert keyed on venture_id.
type BrandGuide struct {
	ID                    string    `json:"id"`
	VentureID             string    `json:"venture_id"`
	Tone                  Tone      `json:"tone"`
	Audience              []string  `json:"audience"`
	ContentPillars        []string  `json:"content_pillars"`
	NegativeKeywords      []string  `json:"negative_keywords"`
	PostingFrequency      int       `json:"posting_frequency"`
	AutoApprovalThreshold float64   `json:"auto_approval_threshold"`
	TargetPlatforms       []string  `json:"target_platforms"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`
}

// UpsertRequest holds the fields for creating or replacing a brand guide.
type UpsertRequest struct {
	Tone                  Tone     `json:"tone"`
	Audience              []string `json:"audience"`
	ContentPillars        []string `json:"content_pillars"`
	NegativeKeywords      []string `json:"negative_keywords"`
	PostingFrequency      int      `json:"posting_frequency"`
	AutoApprovalThreshold float64  `json:"auto_approval_threshold"`
	TargetPlatforms       []string `json:"target_platforms"`
}

// Validate checks the upsert request. Tone and audience are required;
// the auto-approval threshold must stay in [0,1].
func (r *UpsertRequest) Validate() error {
	if r.Tone == "" {
		return fmt.Errorf("tone is required: %w", domain.ErrValidation)
	}
	if !r.Tone.Valid() {
		return fmt.Errorf("tone must be one of %s: %w", toneList(), domain.ErrValidation)
	}
	if len(r.Audience) == 0 {
		return fmt.Errorf("audience is required: %w", domain.ErrValidation)
	}
	if r.PostingFrequency < 0 {
		return fmt.Errorf("posting_frequency must not be negative: %w", domain.ErrValidation)
	}
	if r.AutoApprovalThreshold < 0 || r.AutoApprovalThreshold > 1 {
		return fmt.Errorf("auto_approval_threshold must be between 0 and 1: %w", domain.ErrValidation)
	}
	return nil
}

func toneList() string {
	names := make([]string, len(Tones))
	for i, t := range Tones {
		names[i] = string(t)
	}
	return strings.Join(names, ", ")
}
