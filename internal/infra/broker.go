package infra

import (
	"context"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"

	"github.com/Alturino/storefront/internal/config"
	"github.com/Alturino/storefront/internal/constants"
)

// NewBrokerConnection dials RabbitMQ. It is only called when broker.driver
// is amqp.
func NewBrokerConnection(c context.Context, config config.Broker) *amqp.Connection {
	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "main NewBrokerConnection").
		Str(constants.KEY_PROCESS, "dialing rabbitmq").
		Logger()

	logger.Info().Msg("dialing rabbitmq")
	conn, err := amqp.Dial(config.URL)
	if err != nil {
		err = fmt.Errorf("failed dialing rabbitmq with error=%w", err)
		logger.Fatal().Err(err).Msg(err.Error())
	}
	logger.Info().Msg("dialed rabbitmq")

	return conn
}
