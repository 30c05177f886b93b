package http

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/reachforge/reachforge/internal/domain/user"
	"github.com/reachforge/reachforge/internal/middleware"
)

// Register handles POST /api/v1/auth/register.
func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	req, ok := readJSON[user.CreateRequest](w, r)
	if !ok {
		return
	}
	u, err := h.Auth.Register(r.Context(), &req)
	if err != nil {
		writeDomainError(w, r, err, "user not found")
		return
	}
	writeJSON(w, http.StatusCreated, u)
}

// Login handles POST /api/v1/auth/login.
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	req, ok := readJSON[user.LoginRequest](w, r)
	if !ok {
		return
	}
	resp, err := h.Auth.Login(r.Context(), req)
	if err != nil {
		slog.Debug("login failed", "email", req.Email, "error", err)
		writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// Logout handles POST /api/v1/auth/logout. The session named by the
// bearer token is revoked; a token that is already gone is a no-op.
func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	if _, ok := currentUserID(w, r); !ok {
		return
	}
	token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
	if err := h.Auth.Logout(r.Context(), token); err != nil {
		writeDomainError(w, r, err, "session not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Me handles GET /api/v1/auth/me.
func (h *Handlers) Me(w http.ResponseWriter, r *http.Request) {
	u := middleware.UserFromContext(r.Context())
	if u == nil {
		writeError(w, http.StatusUnauthorized, "not authenticated")
		return
	}
	writeJSON(w, http.StatusOK, u)
}
