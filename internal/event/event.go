// Package event carries order lifecycle events from the order service to
// whoever notifies the customer. Two transports exist: Redis pub/sub and
// RabbitMQ, picked by broker.driver.
package event

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
)

type Type string

const (
	OrderCreated       Type = "order.created"
	OrderStatusChanged Type = "order.status_changed"
)

type OrderEvent struct {
	ID             uuid.UUID         `json:"id"`
	Type           Type              `json:"type"`
	OrderID        uuid.UUID         `json:"orderId"`
	OwnerID        *uuid.UUID        `json:"ownerId,omitempty"`
	Status         string            `json:"status"`
	PreviousStatus string            `json:"previousStatus,omitempty"`
	Total          decimal.Decimal   `json:"total"`
	CustomerName   string            `json:"customerName,omitempty"`
	CustomerEmail  string            `json:"customerEmail,omitempty"`
	OccurredAt     time.Time         `json:"occurredAt"`
	Trace          map[string]string `json:"trace,omitempty"`
}

func (e OrderEvent) MarshalZerologObject(ev *zerolog.Event) {
	ev.Str("id", e.ID.String()).
		Str("type", string(e.Type)).
		Str("orderId", e.OrderID.String()).
		Str("status", e.Status).
		Str("previousStatus", e.PreviousStatus).
		Str("total", e.Total.StringFixed(2)).
		Time("occurredAt", e.OccurredAt)
}

type Publisher interface {
	Publish(c context.Context, event OrderEvent) error
	Close() error
}

// Handler returning an error leaves the message unacknowledged where the
// transport supports it.
type Handler func(c context.Context, event OrderEvent) error

type Subscriber interface {
	// Subscribe blocks until c is done or the transport fails.
	Subscribe(c context.Context, handler Handler) error
	Close() error
}

type Bus interface {
	Publisher
	Subscriber
}

// encode stamps the event id, time and the active trace context so the
// consumer span joins the producer trace.
func encode(c context.Context, event OrderEvent) ([]byte, error) {
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}
	carrier := propagation.MapCarrier{}
	otel.GetTextMapPropagator().Inject(c, carrier)
	if len(carrier) > 0 {
		event.Trace = carrier
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("failed marshalling event with error=%w", err)
	}
	return payload, nil
}

func decode(c context.Context, payload []byte) (context.Context, OrderEvent, error) {
	event := OrderEvent{}
	if err := json.Unmarshal(payload, &event); err != nil {
		return c, OrderEvent{}, fmt.Errorf("failed unmarshalling event with error=%w", err)
	}
	if len(event.Trace) > 0 {
		c = otel.GetTextMapPropagator().Extract(c, propagation.MapCarrier(event.Trace))
	}
	return c, event, nil
}
