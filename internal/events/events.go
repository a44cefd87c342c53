// Package events publishes domain events about catalog entries, orders and contact submissions.
package events

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	CraftSubmitted     = "craft.submitted"
	CraftModerated     = "craft.moderated"
	OrderCreated       = "order.created"
	OrderStatusUpdated = "order.status_updated"
	OrderCancelled     = "order.cancelled"
	ContactSubmitted   = "contact.submitted"
)

type Event struct {
	ID         string      `json:"id"`
	Type       string      `json:"type"`
	Key        string      `json:"key"`
	OccurredAt time.Time   `json:"occurredAt"`
	Payload    interface{} `json:"payload"`
}

func New(eventType, key string, payload interface{}) Event {
	return Event{
		ID:         uuid.NewString(),
		Type:       eventType,
		Key:        key,
		OccurredAt: time.Now().UTC(),
		Payload:    payload,
	}
}

type Publisher interface {
	Publish(ctx context.Context, evt Event) error
	Close() error
}

// LogPublisher writes events to the service log. It is used when no broker is configured.
type LogPublisher struct {
	log *logrus.Logger
}

func NewLogPublisher(logger *logrus.Logger) *LogPublisher {
	return &LogPublisher{log: logger}
}

func (p *LogPublisher) Publish(_ context.Context, evt Event) error {
	p.log.WithFields(logrus.Fields{
		"event_id":   evt.ID,
		"event_type": evt.Type,
		"event_key":  evt.Key,
	}).Info("Event published")
	return nil
}

func (p *LogPublisher) Close() error { return nil }
