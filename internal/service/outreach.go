package service

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/reachforge/reachforge/internal/adapter/otel"
	"github.com/reachforge/reachforge/internal/adapter/ws"
	"github.com/reachforge/reachforge/internal/domain/outreach"
	"github.com/reachforge/reachforge/internal/port/database"
	"github.com/reachforge/reachforge/internal/port/messagequeue"
)

// OutreachService manages engagement tasks toward prospects. Creation
// emits a queue event for the out-of-process executor.
type OutreachService struct {
	store     database.Store
	prospects *ProspectService
	queue     messagequeue.Queue
	hub       *ws.Hub
	metrics   *otel.Metrics
}

// NewOutreachService creates a new outreach service. queue, hub, and
// metrics may be nil in tests.
func NewOutreachService(store database.Store, prospects *ProspectService, queue messagequeue.Queue, hub *ws.Hub, metrics *otel.Metrics) *OutreachService {
	return &OutreachService{store: store, prospects: prospects, queue: queue, hub: hub, metrics: metrics}
}

// List returns the tasks logged against a prospect the caller owns.
func (s *OutreachService) List(ctx context.Context, userID, prospectID string) ([]outreach.Task, error) {
	if _, err := s.prospects.Get(ctx, userID, prospectID); err != nil {
		return nil, err
	}
	return s.store.ListOutreachTasks(ctx, prospectID)
}

// Create validates and logs a new outreach task in pending_approval.
func (s *OutreachService) Create(ctx context.Context, userID, prospectID string, req *outreach.CreateRequest) (*outreach.Task, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.prospects.Get(ctx, userID, prospectID); err != nil {
		return nil, err
	}

	t, err := s.store.CreateOutreachTask(ctx, prospectID, req)
	if err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.OutreachCreated.Add(ctx, 1)
	}

	event := ws.OutreachQueueEvent{
		TaskID:     t.ID,
		ProspectID: t.ProspectID,
		Phase:      string(t.Phase),
	}
	if s.queue != nil {
		data, err := json.Marshal(event)
		if err == nil {
			if err := s.queue.Publish(ctx, messagequeue.SubjectOutreachCreated, data); err != nil {
				slog.Error("publish outreach event failed", "task_id", t.ID, "error", err)
			}
		}
	}
	if s.hub != nil {
		s.hub.BroadcastEvent(ctx, userID, ws.EventOutreachQueue, event)
	}
	return t, nil
}
