package messaging

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/Azeezfasasi/Tofar-Logistics-Backend/internal/events"
	"github.com/google/uuid"
	"github.com/streadway/amqp"
)

// EventPublisher broadcasts committed lifecycle events. Publishing is
// best-effort: the lifecycle operation already succeeded by the time an event
// goes out.
type EventPublisher interface {
	PublishShipmentEvent(event events.ShipmentEvent) error
}

type Publisher struct {
	client *RabbitMQClient
}

func NewPublisher(client *RabbitMQClient) *Publisher {
	return &Publisher{client: client}
}

func (p *Publisher) PublishShipmentEvent(event events.ShipmentEvent) error {
	if !p.client.IsConnected() {
		return fmt.Errorf("there is no connection to RabbitMQ")
	}

	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("event serialization error: %v", err)
	}

	routingKey := string(event.EventType)

	channel := p.client.Channel()
	err = channel.Publish(
		p.client.config.Exchange,
		routingKey,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
			MessageId:    event.ID.String(),
			Timestamp:    event.Timestamp,
			Headers: amqp.Table{
				"shipment_id":     event.ShipmentID.String(),
				"tracking_number": event.TrackingNumber,
				"event_type":      string(event.EventType),
			},
		},
	)
	if err != nil {
		return fmt.Errorf("event publish error: %v", err)
	}

	log.Printf("Event published: %s -> %s", routingKey, event.TrackingNumber)
	return nil
}

// MemoryPublisher collects events in memory; used by tests.
type MemoryPublisher struct {
	mu     sync.Mutex
	Events []events.ShipmentEvent
}

func NewMemoryPublisher() *MemoryPublisher {
	return &MemoryPublisher{}
}

func (p *MemoryPublisher) PublishShipmentEvent(event events.ShipmentEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Events = append(p.Events, event)
	return nil
}
