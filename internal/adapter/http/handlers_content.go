package http

import (
	"context"
	"net/http"

	"github.com/reachforge/reachforge/internal/domain/content"
)

// ListContent handles GET /api/v1/content.
func (h *Handlers) ListContent(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	drafts, err := h.Content.List(r.Context(), userID)
	if err != nil {
		writeDomainError(w, r, err, "drafts not found")
		return
	}
	writeJSON(w, http.StatusOK, drafts)
}

// CreateContent handles POST /api/v1/content.
func (h *Handlers) CreateContent(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	req, ok := readJSON[content.CreateRequest](w, r)
	if !ok {
		return
	}
	d, err := h.Content.Create(r.Context(), userID, &req)
	if err != nil {
		writeDomainError(w, r, err, "venture not found")
		return
	}
	writeJSON(w, http.StatusCreated, d)
}

// GetContent handles GET /api/v1/content/{id}.
func (h *Handlers) GetContent(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	d, err := h.Content.Get(r.Context(), userID, urlParam(r, "id"))
	if err != nil {
		writeDomainError(w, r, err, "draft not found")
		return
	}
	writeJSON(w, http.StatusOK, d)
}

// UpdateContent handles PUT /api/v1/content/{id}. Partial: absent
// fields keep their stored values.
func (h *Handlers) UpdateContent(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	req, ok := readJSON[content.UpdateRequest](w, r)
	if !ok {
		return
	}
	d, err := h.Content.Update(r.Context(), userID, urlParam(r, "id"), &req)
	if err != nil {
		writeDomainError(w, r, err, "draft not found")
		return
	}
	writeJSON(w, http.StatusOK, d)
}

// DeleteContent handles DELETE /api/v1/content/{id}.
func (h *Handlers) DeleteContent(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	if err := h.Content.Delete(r.Context(), userID, urlParam(r, "id")); err != nil {
		writeDomainError(w, r, err, "draft not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ApproveContent handles POST /api/v1/content/{id}/approve.
func (h *Handlers) ApproveContent(w http.ResponseWriter, r *http.Request) {
	h.transitionContent(w, r, h.Content.Approve)
}

// RejectContent handles POST /api/v1/content/{id}/reject.
func (h *Handlers) RejectContent(w http.ResponseWriter, r *http.Request) {
	h.transitionContent(w, r, h.Content.Reject)
}

// PublishContent handles POST /api/v1/content/{id}/publish.
func (h *Handlers) PublishContent(w http.ResponseWriter, r *http.Request) {
	h.transitionContent(w, r, h.Content.Publish)
}

func (h *Handlers) transitionContent(w http.ResponseWriter, r *http.Request, op func(ctx context.Context, userID, id string) (*content.Draft, error)) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	d, err := op(r.Context(), userID, urlParam(r, "id"))
	if err != nil {
		writeDomainError(w, r, err, "draft not found")
		return
	}
	writeJSON(w, http.StatusOK, d)
}
