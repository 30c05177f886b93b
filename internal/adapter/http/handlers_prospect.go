package http

import (
	"net/http"

	"github.com/reachforge/reachforge/internal/domain/outreach"
	"github.com/reachforge/reachforge/internal/domain/prospect"
)

// ListProspects handles GET /api/v1/prospects. An optional venture_id
// query parameter narrows the list to one venture.
func (h *Handlers) ListProspects(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	prospects, err := h.Prospects.List(r.Context(), userID, r.URL.Query().Get("venture_id"))
	if err != nil {
		writeDomainError(w, r, err, "venture not found")
		return
	}
	writeJSON(w, http.StatusOK, prospects)
}

// CreateProspect handles POST /api/v1/prospects.
func (h *Handlers) CreateProspect(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	req, ok := readJSON[prospect.CreateRequest](w, r)
	if !ok {
		return
	}
	p, err := h.Prospects.Create(r.Context(), userID, &req)
	if err != nil {
		writeDomainError(w, r, err, "venture not found")
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

// GetProspect handles GET /api/v1/prospects/{id}.
func (h *Handlers) GetProspect(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	p, err := h.Prospects.Get(r.Context(), userID, urlParam(r, "id"))
	if err != nil {
		writeDomainError(w, r, err, "prospect not found")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// DeleteProspect handles DELETE /api/v1/prospects/{id}.
func (h *Handlers) DeleteProspect(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	if err := h.Prospects.Delete(r.Context(), userID, urlParam(r, "id")); err != nil {
		writeDomainError(w, r, err, "prospect not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListOutreach handles GET /api/v1/prospects/{id}/outreach.
func (h *Handlers) ListOutreach(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	tasks, err := h.Outreach.List(r.Context(), userID, urlParam(r, "id"))
	if err != nil {
		writeDomainError(w, r, err, "prospect not found")
		return
	}
	writeJSON(w, http.StatusOK, tasks)
}

// CreateOutreach handles POST /api/v1/prospects/{id}/outreach. The
// prospect lookup runs before the insert, so a missing parent is 404
// and someone else's parent is 403 regardless of the payload.
func (h *Handlers) CreateOutreach(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	req, ok := readJSON[outreach.CreateRequest](w, r)
	if !ok {
		return
	}
	task, err := h.Outreach.Create(r.Context(), userID, urlParam(r, "id"), &req)
	if err != nil {
		writeDomainError(w, r, err, "prospect not found")
		return
	}
	writeJSON(w, http.StatusCreated, task)
}
