package event

import (
	"context"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"

	"github.com/Alturino/storefront/internal/constants"
	"github.com/Alturino/storefront/internal/otel"
)

const publishTimeout = 3 * time.Second

// AmqpBus publishes to a durable queue through the default exchange.
type AmqpBus struct {
	ch    *amqp.Channel
	queue string
}

func NewAmqpBus(conn *amqp.Connection, queue string) (*AmqpBus, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("failed opening channel with error=%w", err)
	}
	_, err = ch.QueueDeclare(queue, true, false, false, false, nil)
	if err != nil {
		_ = ch.Close()
		return nil, fmt.Errorf("failed declaring queue=%s with error=%w", queue, err)
	}
	return &AmqpBus{ch: ch, queue: queue}, nil
}

func (b *AmqpBus) Publish(c context.Context, event OrderEvent) error {
	c, span := otel.Tracer.Start(c, "AmqpBus Publish")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "AmqpBus Publish").
		Str(constants.KEY_PROCESS, "publishing event").
		Object(constants.KEY_EVENT, event).
		Logger()

	logger.Trace().Msg("publishing event")
	payload, err := encode(c, event)
	if err != nil {
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}

	pubCtx, cancel := context.WithTimeout(c, publishTimeout)
	defer cancel()
	err = b.ch.PublishWithContext(pubCtx, "", b.queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Type:         string(event.Type),
		Timestamp:    time.Now().UTC(),
		Body:         payload,
	})
	if err != nil {
		err = fmt.Errorf("failed publishing event to queue=%s with error=%w", b.queue, err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	logger.Trace().Msg("published event")

	return nil
}

func (b *AmqpBus) Subscribe(c context.Context, handler Handler) error {
	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "AmqpBus Subscribe").
		Str(constants.KEY_PROCESS, "consuming queue").
		Logger()

	logger.Info().Msgf("consuming queue=%s", b.queue)
	deliveries, err := b.ch.Consume(b.queue, constants.APP_NOTIFICATION_SERVICE, false, false, false, false, nil)
	if err != nil {
		err = fmt.Errorf("failed consuming queue=%s with error=%w", b.queue, err)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	logger.Info().Msgf("consumed queue=%s", b.queue)

	for {
		select {
		case <-c.Done():
			logger.Info().Msg("stopping consumer")
			return nil
		case delivery, ok := <-deliveries:
			if !ok {
				return fmt.Errorf("deliveries channel of queue=%s closed", b.queue)
			}
			if err := handle(c, delivery.Body, handler); err != nil {
				_ = delivery.Nack(false, false)
				continue
			}
			_ = delivery.Ack(false)
		}
	}
}

func (b *AmqpBus) Close() error {
	return b.ch.Close()
}
