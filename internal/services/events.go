package services

import (
	"encoding/json"
	"time"

	"go.uber.org/zap"
)

// Event types published after successful writes.
const (
	EventUserCreated   = "user.created"
	EventUserUpdated   = "user.updated"
	EventUserDeleted   = "user.deleted"
	EventReportCreated = "report.created"
	EventReportUpdated = "report.updated"
	EventReportDeleted = "report.deleted"
)

// EventPublisher delivers domain events to a message broker.
type EventPublisher interface {
	Publish(eventType string, body []byte) error
}

// Event is the JSON payload of a published domain event.
type Event struct {
	Type       string    `json:"type"`
	ID         string    `json:"id"`
	OccurredAt time.Time `json:"occurredAt"`
}

// publishEvent never fails the caller; a broker outage only costs the event.
func publishEvent(events EventPublisher, logger *zap.Logger, eventType, id string) {
	if events == nil {
		return
	}
	body, err := json.Marshal(Event{Type: eventType, ID: id, OccurredAt: time.Now().UTC()})
	if err != nil {
		logger.Warn("failed to marshal event", zap.String("type", eventType), zap.Error(err))
		return
	}
	if err := events.Publish(eventType, body); err != nil {
		logger.Warn("failed to publish event", zap.String("type", eventType), zap.String("id", id), zap.Error(err))
	}
}
