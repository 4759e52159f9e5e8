// Package listener turns order events into customer notifications. Delivery
// itself is behind Notifier; the default implementation only logs.
package listener

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"

	"github.com/Alturino/storefront/internal/constants"
	"github.com/Alturino/storefront/internal/event"
	inOtel "github.com/Alturino/storefront/internal/otel"
)

var tracer = otel.Tracer(constants.APP_NOTIFICATION_SERVICE)

type Notification struct {
	Recipient string
	Subject   string
	Body      string
}

type Notifier interface {
	Notify(c context.Context, notification Notification) error
}

type LogNotifier struct{}

func (LogNotifier) Notify(c context.Context, notification Notification) error {
	zerolog.Ctx(c).Info().
		Str(constants.KEY_TAG, "LogNotifier Notify").
		Str("recipient", notification.Recipient).
		Str("subject", notification.Subject).
		Msg(notification.Body)
	return nil
}

type Listener struct {
	subscriber event.Subscriber
	notifier   Notifier
}

func NewListener(subscriber event.Subscriber, notifier Notifier) *Listener {
	return &Listener{subscriber: subscriber, notifier: notifier}
}

// Run blocks until c is done or the subscription fails.
func (l *Listener) Run(c context.Context) error {
	return l.subscriber.Subscribe(c, l.Handle)
}

// Handle skips events without a recipient.
func (l *Listener) Handle(c context.Context, ev event.OrderEvent) error {
	c, span := tracer.Start(c, "Listener Handle")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "Listener Handle").
		Str(constants.KEY_ORDER_ID, ev.OrderID.String()).
		Str(constants.KEY_PROCESS, "notifying customer").
		Logger()

	notification, ok := Compose(ev)
	if !ok {
		logger.Trace().Msg("skipping event without recipient")
		return nil
	}

	if err := l.notifier.Notify(logger.WithContext(c), notification); err != nil {
		err = fmt.Errorf("failed notifying customer with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	logger.Info().Msg("notified customer")
	return nil
}

func Compose(ev event.OrderEvent) (Notification, bool) {
	if ev.CustomerEmail == "" {
		return Notification{}, false
	}
	n := Notification{Recipient: ev.CustomerEmail}
	switch ev.Type {
	case event.OrderCreated:
		n.Subject = fmt.Sprintf("Order %s received", ev.OrderID)
		n.Body = fmt.Sprintf("Hi %s, we received your order of %s.", ev.CustomerName, ev.Total.StringFixed(2))
	case event.OrderStatusChanged:
		n.Subject = fmt.Sprintf("Order %s is %s", ev.OrderID, ev.Status)
		n.Body = fmt.Sprintf("Hi %s, your order moved from %s to %s.", ev.CustomerName, ev.PreviousStatus, ev.Status)
	default:
		return Notification{}, false
	}
	return n, true
}
