// Package venture defines the Venture domain entity.
package venture

import "time"

// Venture represents a professional project or brand the system
// generates content and tracks prospects for. Owned by exactly one user;
// the name is unique per owner, not globally.
type Venture struct {
	ID                     string    `json:"id"`
	UserID                 string    `json:"user_id"`
	Name                   string    `json:"name"`
	Industry               string    `json:"industry,omitempty"`
	Description            string    `json:"description,omitempty"`
	TargetAudience         string    `json:"target_audience,omitempty"`
	UniqueValueProposition string    `json:"unique_value_proposition,omitempty"`
	KeyOfferings           []string  `json:"key_offerings"`
	CreatedAt              time.Time `json:"created_at"`
	UpdatedAt              time.Time `json:"updated_at"`
}

// CreateRequest holds the fields needed to create a venture.
type CreateRequest struct {
	Name                   string   `json:"name"`
	Industry               string   `json:"industry"`
	Description            string   `json:"description"`
	TargetAudience         string   `json:"target_audience"`
	UniqueValueProposition string   `json:"unique_value_proposition"`
	KeyOfferings           []string `json:"key_offerings"`
}

// UpdateRequest holds optional fields for a partial venture update.
// Nil fields retain their previous values.
type UpdateRequest struct {
	Name                   *string   `json:"name,omitempty"`
	Industry               *string   `json:"industry,omitempty"`
	Description            *string   `json:"description,omitempty"`
	TargetAudience         *string   `json:"target_audience,omitempty"`
	UniqueValueProposition *string   `json:"unique_value_proposition,omitempty"`
	KeyOfferings           *[]string `json:"key_offerings,omitempty"`
}
