// Package service holds the application services sitting between the
// HTTP adapter and the ports.
package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/reachforge/reachforge/internal/config"
	"github.com/reachforge/reachforge/internal/domain"
	"github.com/reachforge/reachforge/internal/domain/user"
	"github.com/reachforge/reachforge/internal/port/database"
)

// AuthService handles registration, login, and session validation.
// Session tokens are opaque; only their SHA-256 hash is persisted.
type AuthService struct {
	store database.Store
	cfg   *config.Auth
}

// NewAuthService creates a new authentication service.
func NewAuthService(store database.Store, cfg *config.Auth) *AuthService {
	return &AuthService{store: store, cfg: cfg}
}

// Register creates a new user with a bcrypt-hashed password.
func (s *AuthService) Register(ctx context.Context, req *user.CreateRequest) (*user.User, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("validate: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.cfg.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &user.User{
		ID:           uuid.NewString(),
		Email:        req.Email,
		Name:         req.Name,
		PasswordHash: string(hash),
		Enabled:      true,
	}

	if err := s.store.CreateUser(ctx, u); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}

// Login authenticates a user and issues a session token. The same
// "invalid credentials" error comes back for unknown emails and wrong
// passwords.
func (s *AuthService) Login(ctx context.Context, req user.LoginRequest) (*user.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("validate: %w", err)
	}

	u, err := s.store.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("invalid credentials: %w", domain.ErrUnauthenticated)
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	if !u.Enabled {
		return nil, fmt.Errorf("account is disabled: %w", domain.ErrUnauthenticated)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return nil, fmt.Errorf("invalid credentials: %w", domain.ErrUnauthenticated)
	}

	rawToken, err := generateRandomToken(32)
	if err != nil {
		return nil, fmt.Errorf("generate session token: %w", err)
	}

	sess := &user.Session{
		ID:        uuid.NewString(),
		UserID:    u.ID,
		TokenHash: hashSHA256(rawToken),
		ExpiresAt: time.Now().UTC().Add(s.cfg.SessionTTL),
	}
	if err := s.store.CreateSession(ctx, sess); err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}

	return &user.LoginResponse{
		Token:     rawToken,
		ExpiresAt: sess.ExpiresAt,
		User:      *u,
	}, nil
}

// Logout invalidates the session behind the given token. Unknown
// tokens are a no-op so logout is idempotent.
func (s *AuthService) Logout(ctx context.Context, rawToken string) error {
	sess, err := s.store.GetSessionByTokenHash(ctx, hashSHA256(rawToken))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("get session: %w", err)
	}
	if err := s.store.DeleteSession(ctx, sess.ID); err != nil && !errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// ValidateSession resolves a raw bearer token to its user. Expired
// sessions are deleted on sight.
func (s *AuthService) ValidateSession(ctx context.Context, rawToken string) (*user.User, error) {
	sess, err := s.store.GetSessionByTokenHash(ctx, hashSHA256(rawToken))
	if err != nil {
		return nil, fmt.Errorf("session lookup: %w", domain.ErrUnauthenticated)
	}

	if time.Now().After(sess.ExpiresAt) {
		_ = s.store.DeleteSession(ctx, sess.ID)
		return nil, fmt.Errorf("session expired: %w", domain.ErrUnauthenticated)
	}

	u, err := s.store.GetUser(ctx, sess.UserID)
	if err != nil {
		return nil, fmt.Errorf("session user: %w", domain.ErrUnauthenticated)
	}
	if !u.Enabled {
		return nil, fmt.Errorf("account is disabled: %w", domain.ErrUnauthenticated)
	}
	return u, nil
}

// SweepExpiredSessions deletes expired sessions in a loop until ctx is
// cancelled. Intended to run in its own goroutine.
func (s *AuthService) SweepExpiredSessions(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := s.store.DeleteExpiredSessions(ctx)
			if err != nil {
				slog.Error("session sweep failed", "error", err)
				continue
			}
			if n > 0 {
				slog.Info("expired sessions removed", "count", n)
			}
		}
	}
}

func hashSHA256(data string) string {
	h := sha256.Sum256([]byte(data))
	return hex.EncodeToString(h[:])
}

func generateRandomToken(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
