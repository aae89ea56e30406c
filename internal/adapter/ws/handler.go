// Package ws implements the WebSocket adapter that pushes live draft updates
// to the portfolio editor.
package ws

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/coder/websocket"

	"github.com/HamzaKhandev1446/Portfolio-builder-app/internal/domain/portfolio"
	"github.com/HamzaKhandev1446/Portfolio-builder-app/internal/middleware"
)

const writeTimeout = 10 * time.Second

// Message is the envelope for all WebSocket messages.
type Message struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// DraftWatcher streams an owner's draft portfolio on every change.
type DraftWatcher interface {
	WatchDraft(ctx context.Context, userID string) (<-chan portfolio.Portfolio, error)
}

// conn wraps a single WebSocket connection.
type conn struct {
	ws     *websocket.Conn
	cancel context.CancelFunc
	userID string
}

// Hub tracks live preview connections. Each connection follows the draft of
// the authenticated owner that opened it.
type Hub struct {
	drafts         DraftWatcher
	originPatterns []string

	mu    sync.RWMutex
	conns map[*conn]struct{}
}

// NewHub creates a new WebSocket hub. originPatterns are host patterns
// accepted in the Origin header; with none, only same-origin clients connect.
func NewHub(drafts DraftWatcher, originPatterns []string) *Hub {
	return &Hub{
		drafts:         drafts,
		originPatterns: originPatterns,
		conns:          make(map[*conn]struct{}),
	}
}

// HandleDraft upgrades the request and streams the owner's draft until the
// client disconnects. It must run behind middleware.Auth.
func (h *Hub) HandleDraft(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())
	if userID == "" {
		http.Error(w, `{"error":"authentication required"}`, http.StatusUnauthorized)
		return
	}

	ws, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: h.originPatterns,
	})
	if err != nil {
		slog.Error("websocket accept failed", "error", err)
		return
	}

	// The request context ends when the handler returns, so the connection
	// gets its own.
	ctx, cancel := context.WithCancel(context.WithoutCancel(r.Context()))
	c := &conn{ws: ws, cancel: cancel, userID: userID}

	updates, err := h.drafts.WatchDraft(ctx, userID)
	if err != nil {
		slog.Error("watch draft failed", "user_id", userID, "error", err)
		cancel()
		_ = ws.Close(websocket.StatusInternalError, "draft unavailable")
		return
	}

	h.mu.Lock()
	h.conns[c] = struct{}{}
	h.mu.Unlock()

	slog.Info("websocket connected", "remote", r.RemoteAddr, "user_id", userID)

	// CloseRead discards client frames and cancels ctx when the peer goes away.
	ctx = ws.CloseRead(ctx)

	go func() {
		defer func() {
			h.remove(c)
			_ = ws.Close(websocket.StatusNormalClosure, "")
		}()
		for {
			select {
			case <-ctx.Done():
				return
			case p, ok := <-updates:
				if !ok {
					return
				}
				if err := h.send(ctx, c, EventDraftUpdated, DraftEvent{UserID: userID, Portfolio: p}); err != nil {
					slog.Debug("websocket write failed", "user_id", userID, "error", err)
					return
				}
			}
		}
	}()
}

func (h *Hub) send(ctx context.Context, c *conn, eventType string, payload any) error {
	data, err := encode(eventType, payload)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()
	return c.ws.Write(ctx, websocket.MessageText, data)
}

// ConnectionCount returns the number of active connections.
func (h *Hub) ConnectionCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns)
}

// Close disconnects every client. Used on server shutdown.
func (h *Hub) Close() {
	h.mu.Lock()
	conns := make([]*conn, 0, len(h.conns))
	for c := range h.conns {
		conns = append(conns, c)
	}
	h.mu.Unlock()

	for _, c := range conns {
		_ = c.ws.Close(websocket.StatusGoingAway, "server shutting down")
		h.remove(c)
	}
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
