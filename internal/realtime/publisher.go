package realtime

import (
	"context"
	"time"
)

// Broadcast channels consumed by live viewers
const (
	ChannelKitchen = "pos:kitchen"
	ChannelTables  = "pos:tables"
	ChannelEvents  = "pos:events"
)

// Event types
const (
	EventOrderCreated      = "order.created"
	EventOrderUpdated      = "order.updated"
	EventOrderCancelled    = "order.cancelled"
	EventLineStatusChanged = "order.line_status"
	EventLineVoided        = "order.line_voided"
	EventInvoicePaid       = "invoice.paid"
	EventTableChanged      = "table.changed"
	EventVoidRequested     = "void.requested"
	EventVoidDecided       = "void.decided"
	EventKitchenSnapshot   = "kitchen.snapshot"
	EventTableSnapshot     = "tables.snapshot"
)

// Event is the payload pushed to live viewers. Pushes are an
// optimization on top of the periodic resync snapshots, never the
// source of truth.
type Event struct {
	Type    string      `json:"type"`
	At      time.Time   `json:"at"`
	Payload interface{} `json:"payload,omitempty"`
}

// NewEvent creates an event stamped with the current time
func NewEvent(eventType string, payload interface{}) Event {
	return Event{Type: eventType, At: time.Now(), Payload: payload}
}

// Publisher pushes events to live viewers on a best-effort basis.
// Publish must never block the caller and must never return an error
// to it; delivery is not guaranteed.
type Publisher interface {
	Publish(ctx context.Context, channel string, event Event)
}

// NopPublisher discards all events. Used in tests and when redis is
// not configured.
type NopPublisher struct{}

// Publish discards the event
func (NopPublisher) Publish(ctx context.Context, channel string, event Event) {}
