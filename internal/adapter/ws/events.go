package ws

import (
	"context"
	"encoding/json"
	"log/slog"
)

// Event type constants for WebSocket messages.
const (
	EventDraftStatus   = "draft.status"
	EventOutreachQueue = "outreach.queued"
)

// DraftStatusEvent is broadcast when a content draft moves through the
// approval lifecycle.
type DraftStatusEvent struct {
	DraftID   string `json:"draft_id"`
	VentureID string `json:"venture_id"`
	Status    string `json:"status"`
}

// OutreachQueueEvent is broadcast when a new outreach task is created.
type OutreachQueueEvent struct {
	TaskID     string `json:"task_id"`
	ProspectID string `json:"prospect_id"`
	Phase      string `json:"phase"`
}

// BroadcastEvent marshals a typed event and broadcasts it to the user's
// connections.
func (h *Hub) BroadcastEvent(ctx context.Context, userID, eventType string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		slog.Error("marshal ws event payload", "type", eventType, "error", err)
		return
	}

	h.BroadcastToUser(ctx, userID, Message{
		Type:    eventType,
		Payload: json.RawMessage(data),
	})
}
