package events

import (
	"github.com/solpin/solpin-service/internal/types"
)

// Publisher interface for publishing events
type Publisher interface {
	PublishUploadCreated(record types.UploadRecord)
}

// GalleryHub is the part of the WebSocket hub the publisher needs.
type GalleryHub interface {
	Broadcast(event *types.Event)
}

// EventPublisher implements the Publisher interface
type EventPublisher struct {
	hub GalleryHub
}

// NewEventPublisher creates a new event publisher
func NewEventPublisher(hub GalleryHub) *EventPublisher {
	return &EventPublisher{
		hub: hub,
	}
}

// PublishUploadCreated announces a freshly persisted record to every
// connected gallery client.
func (p *EventPublisher) PublishUploadCreated(record types.UploadRecord) {
	eventData := &types.UploadCreatedEvent{
		Record: record,
	}

	event := types.NewEvent(types.EventUploadCreated, eventData)
	p.hub.Broadcast(event)
}
