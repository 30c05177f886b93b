// Package outreach defines the OutreachTask domain entity.
package outreach

import (
	"fmt"
	"strings"
	"time"

	"github.com/reachforge/reachforge/internal/domain"
)

// Phase is the engagement action type toward a prospect.
type Phase string

const (
	PhaseLike    Phase = "like"
	PhaseComment Phase = "comment"
	PhaseConnect Phase = "connect"
)

// Phases lists all allowed phase values.
var Phases = []Phase{PhaseLike, PhaseComment, PhaseConnect}

// Valid reports whether p is one of the allowed phases.
func (p Phase) Valid() bool {
	for _, v := range Phases {
		if p == v {
			return true
		}
	}
	return false
}

// Status represents the execution state of an outreach task.
type Status string

const (
	StatusPendingApproval Status = "pending_approval"
	StatusApproved        Status = "approved"
	StatusExecuted        Status = "executed"
	StatusFailed          Status = "failed"
)

// Task represents a logged or scheduled engagement action toward a
// prospect. Ownership follows the prospect's venture.
type Task struct {
	ID               string     `json:"id"`
	ProspectID       string     `json:"prospect_id"`
	Phase            Phase      `json:"phase"`
	GeneratedMessage string     `json:"generated_message,omitempty"`
	EditedMessage    string     `json:"edited_message,omitempty"`
	Status           Status     `json:"status"`
	ScheduledAt      *time.Time `json:"scheduled_at,omitempty"`
	ExecutedAt       *time.Time `json:"executed_at,omitempty"`
	ErrorMessage     string     `json:"error_message,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// CreateRequest holds the fields needed to log an outreach task.
type CreateRequest struct {
	Phase            Phase      `json:"phase"`
	GeneratedMessage string     `json:"generated_message"`
	ScheduledAt      *time.Time `json:"scheduled_at"`
}

// Validate checks an outreach task creation request.
func (r *CreateRequest) Validate() error {
	if r.Phase == "" {
		return fmt.Errorf("phase is required: %w", domain.ErrValidation)
	}
	if !r.Phase.Valid() {
		return fmt.Errorf("phase must be one of %s: %w", phaseList(), domain.ErrValidation)
	}
	return nil
}

func phaseList() string {
	names := make([]string, len(Phases))
	for i, p := range Phases {
		names[i] = string(p)
	}
	return strings.Join(names, ", ")
}
