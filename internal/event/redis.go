package event

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/Alturino/storefront/internal/constants"
	"github.com/Alturino/storefront/internal/otel"
)

type RedisBus struct {
	client  *redis.Client
	channel string
}

func NewRedisBus(client *redis.Client, channel string) *RedisBus {
	return &RedisBus{client: client, channel: channel}
}

func (b *RedisBus) Publish(c context.Context, event OrderEvent) error {
	c, span := otel.Tracer.Start(c, "RedisBus Publish")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "RedisBus Publish").
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
	if err = b.client.Publish(c, b.channel, payload).Err(); err != nil {
		err = fmt.Errorf("failed publishing event to channel=%s with error=%w", b.channel, err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	logger.Trace().Msg("published event")

	return nil
}

func (b *RedisBus) Subscribe(c context.Context, handler Handler) error {
	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "RedisBus Subscribe").
		Str(constants.KEY_PROCESS, "subscribing channel").
		Logger()

	logger.Info().Msgf("subscribing channel=%s", b.channel)
	pubsub := b.client.Subscribe(c, b.channel)
	defer pubsub.Close()
	if _, err := pubsub.Receive(c); err != nil {
		err = fmt.Errorf("failed subscribing channel=%s with error=%w", b.channel, err)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	logger.Info().Msgf("subscribed channel=%s", b.channel)

	messages := pubsub.Channel()
	for {
		select {
		case <-c.Done():
			logger.Info().Msg("stopping subscriber")
			return nil
		case msg, ok := <-messages:
			if !ok {
				return nil
			}
			handle(c, []byte(msg.Payload), handler)
		}
	}
}

// Close is a no-op, the client is owned by the caller.
func (b *RedisBus) Close() error {
	return nil
}

func handle(c context.Context, payload []byte, handler Handler) error {
	c, event, err := decode(c, payload)
	logger := zerolog.Ctx(c).With().Str(constants.KEY_TAG, "event handle").Logger()
	if err != nil {
		logger.Error().Err(err).Msg(err.Error())
		return err
	}

	c, span := otel.Tracer.Start(c, "event handle "+string(event.Type))
	defer span.End()

	logger = logger.With().Object(constants.KEY_EVENT, event).Logger()
	logger.Trace().Msg("handling event")
	if err = handler(logger.WithContext(c), event); err != nil {
		err = fmt.Errorf("failed handling event with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	logger.Trace().Msg("handled event")
	return nil
}
