// Package user defines the User domain entity and auth request types.
package user

import (
	"fmt"
	"strings"
	"time"

	"github.com/reachforge/reachforge/internal/domain"
)

// User represents a registered account. One user owns many ventures.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	Enabled      bool      `json:"enabled"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Session is an opaque bearer token issued at login. Only the SHA-256
// hash of the token is persisted.
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	TokenHash string    `json:"-"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateRequest holds the fields needed to register a user.
type CreateRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

// Validate checks the registration fields.
func (r *CreateRequest) Validate() error {
	if strings.TrimSpace(r.Email) == "" {
		return fmt.Errorf("email is required: %w", domain.ErrValidation)
	}
	if !strings.Contains(r.Email, "@") {
		return fmt.Errorf("email format is invalid: %w", domain.ErrValidation)
	}
	if strings.TrimSpace(r.Name) == "" {
		return fmt.Errorf("name is required: %w", domain.ErrValidation)
	}
	if len(r.Password) < 8 {
		return fmt.Errorf("password must be at least 8 characters: %w", domain.ErrValidation)
	}
	return nil
}

// LoginRequest holds login credentials.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate checks the login fields.
func (r *LoginRequest) Validate() error {
	if r.Email == "" {
		return fmt.Errorf("email is required: %w", domain.ErrValidation)
	}
	if r.Password == "" {
		return fmt.Errorf("password is required: %w", domain.ErrValidation)
	}
	return nil
}

// LoginResponse is returned on successful login.
type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	User      User      `json:"user"`
}
