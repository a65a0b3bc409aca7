package notifications

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"shoplist/internal/featureflags"
)

// Live sync event types.
const (
	EventItemCreated     = "item_created"
	EventItemUpdated     = "item_updated"
	EventItemToggled     = "item_toggled"
	EventItemDeleted     = "item_deleted"
	EventCategoryCreated = "category_created"
)

// Event is the envelope written to websocket clients.
type Event struct {
	Type      string      `json:"type"`
	Payload   interface{} `json:"payload"`
	Timestamp time.Time   `json:"timestamp"`
}

// Publisher routes owner-scoped events to a user's connections. With Redis
// the event goes through pub/sub so every instance sees it; without Redis it
// is delivered by the local hub only.
type Publisher struct {
	notifier *Notifier
	hub      *Hub
	flags    *featureflags.Manager
	now      func() time.Time
}

// NewPublisher creates a Publisher. notifier, hub and flags may be nil.
func NewPublisher(notifier *Notifier, hub *Hub, flags *featureflags.Manager) *Publisher {
	return &Publisher{notifier: notifier, hub: hub, flags: flags, now: time.Now}
}

// PublishUser sends an event to userID when live sync is enabled for them.
func (p *Publisher) PublishUser(ctx context.Context, userID, eventType string, payload interface{}) error {
	if p == nil || userID == "" {
		return nil
	}
	if p.flags != nil && !p.flags.Enabled(featureflags.FlagLiveSync, userID) {
		return nil
	}

	raw, err := json.Marshal(Event{Type: eventType, Payload: payload, Timestamp: p.now().UTC()})
	if err != nil {
		return fmt.Errorf("marshal %s event: %w", eventType, err)
	}

	if p.notifier.Enabled() {
		return p.notifier.PublishUser(ctx, userID, string(raw))
	}
	if p.hub != nil {
		p.hub.Broadcast(userID, string(raw))
	}
	return nil
}
