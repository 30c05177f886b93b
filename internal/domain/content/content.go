// Package content defines the ContentDraft entity and its status lifecycle.
package content

import "time"

// Status represents the approval state of a content draft.
type Status string

const (
	StatusPendingValidation Status = "pending_validation"
	StatusPendingReview     Status = "pending_review"
	StatusApproved          Status = "approved"
	StatusRejected          Status = "rejected"
	StatusPublished         Status = "published"
)

// Statuses lists all allowed status values.
var Statuses = []Status{
	StatusPendingValidation,
	StatusPendingReview,
	StatusApproved,
	StatusRejected,
	StatusPublished,
}

// Valid reports whether s is one of the allowed statuses.
func (s Status) Valid() bool {
	for _, v := range Statuses {
		if s == v {
			return true
		}
	}
	return false
}

// transitions is the complete allowed-transition table. Published is
// terminal; rejected drafts may re-enter review after editing.
var transitions = map[Status][]Status{
	StatusPendingValidation: {StatusPendingReview, StatusRejected},
	StatusPendingReview:     {StatusApproved, StatusRejected},
	StatusApproved:          {StatusPublished},
	StatusRejected:          {StatusPendingReview},
	StatusPublished:         {},
}

// CanTransition reports whether a draft may move from one status to another.
func CanTransition(from, to Status) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Draft represents one LinkedIn post candidate with an approval lifecycle.
// It belongs to a user and optionally to one of that user's ventures.
type Draft struct {
	ID                string     `json:"id"`
	UserID            string     `json:"user_id"`
	VentureID         string     `json:"venture_id,omitempty"`
	Topic             string     `json:"topic,omitempty"`
	OriginalText      string     `json:"original_text"`
	EditedText        string     `json:"edited_text,omitempty"`
	AIConfidenceScore float64    `json:"ai_confidence_score"`
	Status            Status     `json:"status"`
	ScheduledFor      *time.Time `json:"scheduled_for,omitempty"`
	Hashtags          []string   `json:"hashtags"`
	ApprovedAt        *time.Time `json:"approved_at,omitempty"`
	PublishedAt       *time.Time `json:"published_at,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// CreateRequest holds the fields needed to create a draft.
type CreateRequest struct {
	VentureID         string     `json:"venture_id"`
	Topic             string     `json:"topic"`
	OriginalText      string     `json:"original_text"`
	AIConfidenceScore float64    `json:"ai_confidence_score"`
	ScheduledFor      *time.Time `json:"scheduled_for"`
	Hashtags          []string   `json:"hashtags"`
}

// UpdateRequest holds optional fields for a partial draft update.
type UpdateRequest struct {
	Topic        *string    `json:"topic,omitempty"`
	EditedText   *string    `json:"edited_text,omitempty"`
	Status       *Status    `json:"status,omitempty"`
	ScheduledFor *time.Time `json:"scheduled_for,omitempty"`
	Hashtags     *[]string  `json:"hashtags,omitempty"`
}
