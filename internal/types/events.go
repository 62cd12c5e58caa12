package types

import "time"

// EventType represents the type of real-time event
type EventType string

const (
	EventUploadCreated EventType = "upload.created"
)

// Event represents a real-time event that can be sent over WebSocket
type Event struct {
	Type      EventType   `json:"type"`
	Data      interface{} `json:"data"`
	Timestamp string      `json:"timestamp"`
}

// UploadCreatedEvent is broadcast to gallery clients after a record persists.
type UploadCreatedEvent struct {
	Record UploadRecord `json:"record"`
}

// NewEvent creates a new event with the current timestamp
func NewEvent(eventType EventType, data interface{}) *Event {
	return &Event{
		Type:      eventType,
		Data:      data,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}
