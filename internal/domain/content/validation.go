package content

import (
	"fmt"
	"strings"

	"github.com/reachforge/reachforge/internal/domain"
)

// ValidateCreateRequest checks a draft creation request. original_text
// is the only hard requirement; the confidence score must stay in [0,1].
func ValidateCreateRequest(req *CreateRequest) error {
	if strings.TrimSpace(req.OriginalText) == "" {
		return fmt.Errorf("original_text is required: %w", domain.ErrValidation)
	}
	if req.AIConfidenceScore < 0 || req.AIConfidenceScore > 1 {
		return fmt.Errorf("ai_confidence_score must be between 0 and 1: %w", domain.ErrValidation)
	}
	return nil
}

// ValidateUpdateRequest checks the provided fields of a partial update.
// A status supplied here must name a known value; transition legality is
// enforced by the service against the current row.
func ValidateUpdateRequest(req *UpdateRequest) error {
	if req.Status != nil && !req.Status.Valid() {
		return fmt.Errorf("status must be one of %s: %w", statusList(), domain.ErrValidation)
	}
	return nil
}

func statusList() string {
	names := make([]string, len(Statuses))
	for i, s := range Statuses {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}
