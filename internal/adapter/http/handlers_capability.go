package http

import (
	"net/http"

	"github.com/reachforge/reachforge/internal/domain/capability"
)

// ListTools handles GET /api/v1/tc3d/tools. Public.
func (h *Handlers) ListTools(w http.ResponseWriter, r *http.Request) {
	tools, err := h.Capabilities.ListTools(r.Context())
	if err != nil {
		writeDomainError(w, r, err, "tools not found")
		return
	}
	writeJSON(w, http.StatusOK, tools)
}

// ListTiers handles GET /api/v1/tc3d/tiers. Public.
func (h *Handlers) ListTiers(w http.ResponseWriter, r *http.Request) {
	tiers, err := h.Capabilities.ListTiers(r.Context())
	if err != nil {
		writeDomainError(w, r, err, "tiers not found")
		return
	}
	writeJSON(w, http.StatusOK, tiers)
}

// ListTasks handles GET /api/v1/tc3d/tasks. Public.
func (h *Handlers) ListTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.Capabilities.ListTasks(r.Context())
	if err != nil {
		writeDomainError(w, r, err, "tasks not found")
		return
	}
	writeJSON(w, http.StatusOK, tasks)
}

// ListCapabilities handles GET /api/v1/tc3d/capabilities.
func (h *Handlers) ListCapabilities(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	scores, err := h.Capabilities.ListScores(r.Context(), userID)
	if err != nil {
		writeDomainError(w, r, err, "scores not found")
		return
	}
	writeJSON(w, http.StatusOK, scores)
}

// UpsertCapability handles POST /api/v1/tc3d/capabilities. A fresh
// (tool, task) key is 201; overwriting an existing score is 200.
func (h *Handlers) UpsertCapability(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	req, ok := readJSON[capability.UpsertRequest](w, r)
	if !ok {
		return
	}
	score, inserted, err := h.Capabilities.UpsertScore(r.Context(), userID, &req)
	if err != nil {
		writeDomainError(w, r, err, "score not found")
		return
	}
	status := http.StatusOK
	if inserted {
		status = http.StatusCreated
	}
	writeJSON(w, status, score)
}
