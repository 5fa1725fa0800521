package events

import "time"

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "chat.message.appended").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent is the canonical Event implementation used across the app.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// Session store event types, broadcast to the UI over the websocket feed and
// mirrored to NATS when a connection is configured.
const (
	TypeSessionCreated  = "chat.session.created"
	TypeSessionDeleted  = "chat.session.deleted"
	TypeSessionsCleared = "chat.sessions.cleared"
	TypeMessageAppended = "chat.message.appended"
	TypePrivacyChanged  = "chat.privacy.changed"
	TypeRequestState    = "chat.request.state"
)

func New(eventType string, data map[string]interface{}) BaseEvent {
	return BaseEvent{
		Type:       eventType,
		Data:       data,
		OccurredAt: time.Now(),
	}
}
