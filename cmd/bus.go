package cmd

import (
	"context"
	"errors"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/Alturino/storefront/internal/config"
	"github.com/Alturino/storefront/internal/constants"
	"github.com/Alturino/storefront/internal/event"
	"github.com/Alturino/storefront/internal/infra"
)

// amqpBus owns the connection its channel was opened on.
type amqpBus struct {
	*event.AmqpBus
	conn *amqp.Connection
}

func (b amqpBus) Close() error {
	return errors.Join(b.AmqpBus.Close(), b.conn.Close())
}

// newBus picks the order event transport named by broker.driver. The redis
// driver reuses the cache client.
func newBus(c context.Context, cfg config.Config, cache *redis.Client) (event.Bus, error) {
	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "main newBus").
		Str("driver", cfg.Broker.Driver).
		Logger()

	switch cfg.Broker.Driver {
	case config.BrokerDriverRedis:
		logger.Info().Msg("using redis pub/sub for order events")
		return event.NewRedisBus(cache, cfg.Broker.Queue), nil
	case config.BrokerDriverAmqp:
		logger.Info().Msg("using rabbitmq for order events")
		conn := infra.NewBrokerConnection(c, cfg.Broker)
		bus, err := event.NewAmqpBus(conn, cfg.Broker.Queue)
		if err != nil {
			_ = conn.Close()
			return nil, fmt.Errorf("failed initializing amqp bus with error=%w", err)
		}
		return amqpBus{AmqpBus: bus, conn: conn}, nil
	default:
		return nil, fmt.Errorf("unknown broker driver=%s", cfg.Broker.Driver)
	}
}
