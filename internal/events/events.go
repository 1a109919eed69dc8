package events

import (
	"time"

	"github.com/google/uuid"
)

type EventType string

const (
	ShipmentCreatedEvent       EventType = "shipment.created"
	ShipmentUpdatedEvent       EventType = "shipment.updated"
	ShipmentStatusChangedEvent EventType = "shipment.status_changed"
	ShipmentReplyPostedEvent   EventType = "shipment.reply_posted"
)

// ShipmentEvent is broadcast on the message bus after a lifecycle operation
// commits. Consumers (dashboards, SMS fan-out) subscribe by routing key.
type ShipmentEvent struct {
	ID             uuid.UUID   `json:"id"`
	EventType      EventType   `json:"event_type"`
	ShipmentID     uuid.UUID   `json:"shipment_id"`
	TrackingNumber string      `json:"tracking_number"`
	Status         string      `json:"status"`
	ActorID        *uuid.UUID  `json:"actor_id,omitempty"`
	ActorRole      string      `json:"actor_role,omitempty"`
	Timestamp      time.Time   `json:"timestamp"`
	Payload        interface{} `json:"payload,omitempty"`
}
