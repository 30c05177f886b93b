package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/reachforge/reachforge/internal/adapter/otel"
	"github.com/reachforge/reachforge/internal/adapter/ws"
	"github.com/reachforge/reachforge/internal/domain"
	"github.com/reachforge/reachforge/internal/domain/content"
	"github.com/reachforge/reachforge/internal/port/database"
	"github.com/reachforge/reachforge/internal/port/messagequeue"
)

// ContentService manages content drafts and their approval lifecycle.
// Status changes go out as JetStream events and websocket broadcasts.
type ContentService struct {
	store   database.Store
	queue   messagequeue.Queue
	hub     *ws.Hub
	metrics *otel.Metrics
}

// NewContentService creates a new content service. queue, hub, and
// metrics may be nil in tests.
func NewContentService(store database.Store, queue messagequeue.Queue, hub *ws.Hub, metrics *otel.Metrics) *ContentService {
	return &ContentService{store: store, queue: queue, hub: hub, metrics: metrics}
}

// List returns the caller's drafts, newest first.
func (s *ContentService) List(ctx context.Context, userID string) ([]content.Draft, error) {
	return s.store.ListDrafts(ctx, userID)
}

// Get returns one draft after an ownership check.
func (s *ContentService) Get(ctx context.Context, userID, id string) (*content.Draft, error) {
	d, err := s.store.GetDraft(ctx, id)
	if err != nil {
		return nil, err
	}
	if d.UserID != userID {
		return nil, fmt.Errorf("draft %s: %w", id, domain.ErrForbidden)
	}
	return d, nil
}

// Create validates and stores a new draft in pending_validation.
func (s *ContentService) Create(ctx context.Context, userID string, req *content.CreateRequest) (*content.Draft, error) {
	if err := content.ValidateCreateRequest(req); err != nil {
		return nil, err
	}
	if req.VentureID != "" {
		v, err := s.store.GetVenture(ctx, req.VentureID)
		if err != nil {
			return nil, err
		}
		if v.UserID != userID {
			return nil, fmt.Errorf("venture %s: %w", req.VentureID, domain.ErrForbidden)
		}
	}
	return s.store.CreateDraft(ctx, userID, req)
}

// Update applies a partial update. A status change must follow the
// transition table; direct jumps like pending_validation to published
// are rejected.
func (s *ContentService) Update(ctx context.Context, userID, id string, req *content.UpdateRequest) (*content.Draft, error) {
	if err := content.ValidateUpdateRequest(req); err != nil {
		return nil, err
	}

	d, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if req.Status != nil && *req.Status != d.Status {
		if !content.CanTransition(d.Status, *req.Status) {
			return nil, fmt.Errorf("cannot move draft from %s to %s: %w", d.Status, *req.Status, domain.ErrValidation)
		}
		d.Status = *req.Status
	}
	if req.Topic != nil {
		d.Topic = *req.Topic
	}
	if req.EditedText != nil {
		d.EditedText = *req.EditedText
	}
	if req.ScheduledFor != nil {
		d.ScheduledFor = req.ScheduledFor
	}
	if req.Hashtags != nil {
		d.Hashtags = *req.Hashtags
	}

	if err := s.store.UpdateDraft(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

// Delete removes a draft.
func (s *ContentService) Delete(ctx context.Context, userID, id string) error {
	if _, err := s.Get(ctx, userID, id); err != nil {
		return err
	}
	return s.store.DeleteDraft(ctx, id)
}

// Approve moves a draft into approved and stamps approved_at.
func (s *ContentService) Approve(ctx context.Context, userID, id string) (*content.Draft, error) {
	d, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	switch d.Status {
	case content.StatusApproved:
		return nil, fmt.Errorf("draft is already approved: %w", domain.ErrValidation)
	case content.StatusPublished:
		return nil, fmt.Errorf("draft is already published: %w", domain.ErrValidation)
	}
	if !content.CanTransition(d.Status, content.StatusApproved) {
		return nil, fmt.Errorf("cannot approve draft in status %s: %w", d.Status, domain.ErrValidation)
	}

	now := time.Now().UTC()
	d.Status = content.StatusApproved
	d.ApprovedAt = &now

	if err := s.store.UpdateDraft(ctx, d); err != nil {
		return nil, err
	}
	s.announce(ctx, d, messagequeue.SubjectContentApproved)
	return d, nil
}

// Reject moves a draft into rejected. Rejected drafts may be edited
// and resubmitted for review.
func (s *ContentService) Reject(ctx context.Context, userID, id string) (*content.Draft, error) {
	d, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if !content.CanTransition(d.Status, content.StatusRejected) {
		return nil, fmt.Errorf("cannot reject draft in status %s: %w", d.Status, domain.ErrValidation)
	}

	d.Status = content.StatusRejected
	if err := s.store.UpdateDraft(ctx, d); err != nil {
		return nil, err
	}
	s.announce(ctx, d, messagequeue.SubjectContentRejected)
	return d, nil
}

// Publish moves an approved draft into published and stamps
// published_at. Published is terminal.
func (s *ContentService) Publish(ctx context.Context, userID, id string) (*content.Draft, error) {
	d, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if d.Status == content.StatusPublished {
		return nil, fmt.Errorf("draft is already published: %w", domain.ErrValidation)
	}
	if !content.CanTransition(d.Status, content.StatusPublished) {
		return nil, fmt.Errorf("cannot publish draft in status %s: %w", d.Status, domain.ErrValidation)
	}

	now := time.Now().UTC()
	d.Status = content.StatusPublished
	d.PublishedAt = &now

	if err := s.store.UpdateDraft(ctx, d); err != nil {
		return nil, err
	}
	if s.metrics != nil {
		s.metrics.DraftsPublished.Add(ctx, 1)
	}
	s.announce(ctx, d, messagequeue.SubjectContentPublished)
	return d, nil
}

// announce publishes the status change on the queue and pushes it to
// the owner's websocket connections. Failures are logged, never
// surfaced; the draft update already committed.
func (s *ContentService) announce(ctx context.Context, d *content.Draft, subject string) {
	event := ws.DraftStatusEvent{
		DraftID:   d.ID,
		VentureID: d.VentureID,
		Status:    string(d.Status),
	}

	if s.queue != nil {
		data, err := json.Marshal(event)
		if err == nil {
			if err := s.queue.Publish(ctx, subject, data); err != nil {
				slog.Error("publish draft event failed", "subject", subject, "draft_id", d.ID, "error", err)
			}
		}
	}
	if s.hub != nil {
		s.hub.BroadcastEvent(ctx, d.UserID, ws.EventDraftStatus, event)
	}
}
