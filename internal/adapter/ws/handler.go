// Package ws implements the WebSocket adapter for real-time dashboard updates.
package ws

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"

	"github.com/coder/websocket"
)

// Message is the envelope for all WebSocket messages.
type Message struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// TokenValidator resolves a session token to the owning user's ID.
// The websocket handshake cannot carry an Authorization header from
// browsers, so the token arrives as a query parameter instead.
type TokenValidator func(ctx context.Context, token string) (userID string, err error)

// conn wraps a single WebSocket connection.
type conn struct {
	ws     *websocket.Conn
	cancel context.CancelFunc
	userID string
}

// Hub manages active WebSocket connections and broadcasts messages.
// Connections are tagged with the authenticated user so events about
// one user's drafts never reach another user's dashboard.
type Hub struct {
	validate TokenValidator

	mu    sync.RWMutex
	conns map[*conn]struct{}
}

// NewHub creates a WebSocket hub. validate may be nil, in which case
// every connection is rejected.
func NewHub(validate TokenValidator) *Hub {
	return &Hub{
		validate: validate,
		conns:    make(map[*conn]struct{}),
	}
}

// HandleWS upgrades the request to a WebSocket connection after
// validating the token query parameter.
func (h *Hub) HandleWS(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" || h.validate == nil {
		http.Error(w, "missing token", http.StatusUnauthorized)
		return
	}
	userID, err := h.validate(r.Context(), token)
	if err != nil {
		http.Error(w, "invalid token", http.StatusUnauthorized)
		return
	}

	ws, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true, // CORS handled by middleware
	})
	if err != nil {
		slog.Error("websocket accept failed", "error", err)
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	c := &conn{ws: ws, cancel: cancel, userID: userID}

	h.mu.Lock()
	h.conns[c] = struct{}{}
	h.mu.Unlock()

	slog.Info("websocket connected", "remote", r.RemoteAddr, "user_id", userID)

	// Read loop (to detect disconnects and consume pings)
	go func() {
		defer func() {
			h.remove(c)
			_ = ws.Close(websocket.StatusNormalClosure, "")
		}()
		for {
			if _, _, err := ws.Read(ctx); err != nil {
				return
			}
		}
	}()
}

// Broadcast sends a message to every connected client.
func (h *Hub) Broadcast(ctx context.Context, msg Message) {
	h.send(ctx, "", msg)
}

// BroadcastToUser sends a message to all connections owned by userID.
func (h *Hub) BroadcastToUser(ctx context.Context, userID string, msg Message) {
	h.send(ctx, userID, msg)
}

func (h *Hub) send(ctx context.Context, userID string, msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		slog.Error("websocket marshal failed", "error", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for c := range h.conns {
		if userID != "" && c.userID != userID {
			continue
		}
		if err := c.ws.Write(ctx, websocket.MessageText, data); err != nil {
			slog.Debug("websocket write failed", "error", err)
			go h.remove(c)
		}
	}
}

// ConnectionCount returns the number of active connections.
func (h *Hub) ConnectionCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns)
}

func (h *Hub) remove(c *conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.conns[c]; ok {
		c.cancel()
		delete(h.conns, c)
		slog.Info("websocket disconnected", "user_id", c.userID)
	}
}
