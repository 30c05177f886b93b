package venture

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/reachforge/reachforge/internal/domain"
)

const (
	maxNameLen        = 255
	maxDescriptionLen = 2000
)

// ValidateCreateRequest checks a venture creation request.
func ValidateCreateRequest(req *CreateRequest) error {
	if strings.TrimSpace(req.Name) == "" {
		return fmt.Errorf("name is required: %w", domain.ErrValidation)
	}
	if err := validateName(req.Name); err != nil {
		return err
	}
	if len(req.Description) > maxDescriptionLen {
		return fmt.Errorf("description exceeds %d characters: %w", maxDescriptionLen, domain.ErrValidation)
	}
	return nil
}

// ValidateUpdateRequest checks the provided fields of a partial update.
func ValidateUpdateRequest(req *UpdateRequest) error {
	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return fmt.Errorf("name cannot be empty: %w", domain.ErrValidation)
		}
		if err := validateName(*req.Name); err != nil {
			return err
		}
	}
	if req.Description != nil && len(*req.Description) > maxDescriptionLen {
		return fmt.Errorf("description exceeds %d characters: %w", maxDescriptionLen, domain.ErrValidation)
	}
	return nil
}

func validateName(name string) error {
	if len(name) > maxNameLen {
		return fmt.Errorf("name exceeds %d characters: %w", maxNameLen, domain.ErrValidation)
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return fmt.Errorf("name contains control characters: %w", domain.ErrValidation)
		}
	}
	return nil
}
