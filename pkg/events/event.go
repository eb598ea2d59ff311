// Package events defines the document lifecycle events published to the bus
// as documents move through ingestion.
package events

import (
	"time"

	"github.com/google/uuid"
)

// Event type codes, one per document status transition.
const (
	TypeDocumentCreated   = "DOCUMENT_CREATED"
	TypeDocumentProcessed = "DOCUMENT_PROCESSED"
	TypeDocumentIndexed   = "DOCUMENT_INDEXED"
	TypeDocumentFailed    = "DOCUMENT_FAILED"
	TypeDocumentDeleted   = "DOCUMENT_DELETED"
)

// Event is the contract for everything published on the bus.
type Event interface {
	EventType() string
	Payload() map[string]interface{}
	Timestamp() time.Time
}

// BaseEvent is the generic implementation; the constructors below build it
// for each lifecycle transition.
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

func newDocumentEvent(eventType string, documentId uuid.UUID, extra map[string]interface{}) BaseEvent {
	data := map[string]interface{}{
		"document_id": documentId.String(),
	}
	for k, v := range extra {
		data[k] = v
	}
	return BaseEvent{
		Type:       eventType,
		Data:       data,
		OccurredAt: time.Now(),
	}
}

func DocumentCreated(documentId uuid.UUID, name string) Event {
	return newDocumentEvent(TypeDocumentCreated, documentId, map[string]interface{}{"name": name})
}

func DocumentProcessed(documentId uuid.UUID, chunkCount int) Event {
	return newDocumentEvent(TypeDocumentProcessed, documentId, map[string]interface{}{"chunk_count": chunkCount})
}

func DocumentIndexed(documentId uuid.UUID, chunkCount int) Event {
	return newDocumentEvent(TypeDocumentIndexed, documentId, map[string]interface{}{"chunk_count": chunkCount})
}

func DocumentFailed(documentId uuid.UUID, reason string) Event {
	return newDocumentEvent(TypeDocumentFailed, documentId, map[string]interface{}{"reason": reason})
}

func DocumentDeleted(documentId uuid.UUID) Event {
	return newDocumentEvent(TypeDocumentDeleted, documentId, nil)
}
