package ws

import (
	"encoding/json"
	"fmt"

	"github.com/HamzaKhandev1446/Portfolio-builder-app/internal/domain/portfolio"
)

// EventDraftUpdated carries the full draft after every save, discard or import.
const EventDraftUpdated = "draft.updated"

// DraftEvent is the payload of EventDraftUpdated.
type DraftEvent struct {
	UserID    string              `json:"userId"`
	Portfolio portfolio.Portfolio `json:"portfolio"`
}

// encode wraps a typed payload in a Message envelope.
func encode(eventType string, payload any) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal ws event %s: %w", eventType, err)
	}
	return json.Marshal(Message{Type: eventType, Payload: data})
}
