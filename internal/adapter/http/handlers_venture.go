package http

import (
	"net/http"

	"github.com/reachforge/reachforge/internal/domain/brandguide"
	"github.com/reachforge/reachforge/internal/domain/venture"
)

// ListVentures handles GET /api/v1/ventures.
func (h *Handlers) ListVentures(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	ventures, err := h.Ventures.List(r.Context(), userID)
	if err != nil {
		writeDomainError(w, r, err, "ventures not found")
		return
	}
	writeJSON(w, http.StatusOK, ventures)
}

// CreateVenture handles POST /api/v1/ventures.
func (h *Handlers) CreateVenture(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	req, ok := readJSON[venture.CreateRequest](w, r)
	if !ok {
		return
	}
	v, err := h.Ventures.Create(r.Context(), userID, &req)
	if err != nil {
		writeDomainError(w, r, err, "venture not found")
		return
	}
	writeJSON(w, http.StatusCreated, v)
}

// GetVenture handles GET /api/v1/ventures/{id}.
func (h *Handlers) GetVenture(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	v, err := h.Ventures.Get(r.Context(), userID, urlParam(r, "id"))
	if err != nil {
		writeDomainError(w, r, err, "venture not found")
		return
	}
	writeJSON(w, http.StatusOK, v)
}

// UpdateVenture handles PUT /api/v1/ventures/{id}.
func (h *Handlers) UpdateVenture(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	req, ok := readJSON[venture.UpdateRequest](w, r)
	if !ok {
		return
	}
	v, err := h.Ventures.Update(r.Context(), userID, urlParam(r, "id"), &req)
	if err != nil {
		writeDomainError(w, r, err, "venture not found")
		return
	}
	writeJSON(w, http.StatusOK, v)
}

// DeleteVenture handles DELETE /api/v1/ventures/{id}.
func (h *Handlers) DeleteVenture(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	if err := h.Ventures.Delete(r.Context(), userID, urlParam(r, "id")); err != nil {
		writeDomainError(w, r, err, "venture not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetBrandGuide handles GET /api/v1/ventures/{id}/brand-guide.
func (h *Handlers) GetBrandGuide(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	guide, err := h.BrandGuides.Get(r.Context(), userID, urlParam(r, "id"))
	if err != nil {
		writeDomainError(w, r, err, "brand guide not found")
		return
	}
	writeJSON(w, http.StatusOK, guide)
}

// UpsertBrandGuide handles POST /api/v1/ventures/{id}/brand-guide.
// The response status distinguishes insert from update.
func (h *Handlers) UpsertBrandGuide(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	req, ok := readJSON[brandguide.UpsertRequest](w, r)
	if !ok {
		return
	}
	guide, inserted, err := h.BrandGuides.Upsert(r.Context(), userID, urlParam(r, "id"), &req)
	if err != nil {
		writeDomainError(w, r, err, "venture not found")
		return
	}
	status := http.StatusOK
	if inserted {
		status = http.StatusCreated
	}
	writeJSON(w, status, guide)
}
