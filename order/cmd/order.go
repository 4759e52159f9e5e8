package cmd

import (
	"context"
	"fmt"

	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/Alturino/storefront/internal/config"
	"github.com/Alturino/storefront/internal/constants"
	"github.com/Alturino/storefront/internal/event"
	inOtel "github.com/Alturino/storefront/internal/otel"
	"github.com/Alturino/storefront/internal/repository"
	"github.com/Alturino/storefront/order/internal/controller"
	"github.com/Alturino/storefront/order/internal/otel"
	"github.com/Alturino/storefront/order/internal/payment"
	"github.com/Alturino/storefront/order/internal/service"
)

// AttachOrderService builds the order service on the shared stores and mounts
// its routes. The returned service is what the cart checkout materializes
// orders through.
func AttachOrderService(
	c context.Context,
	router *mux.Router,
	cfg config.Config,
	pool *pgxpool.Pool,
	cache *redis.Client,
	events event.Publisher,
) (*service.OrderService, error) {
	c, span := otel.Tracer.Start(c, "AttachOrderService")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_APP_NAME, constants.APP_ORDER_SERVICE).
		Str(constants.KEY_TAG, "main AttachOrderService").
		Logger()

	logger = logger.With().Str(constants.KEY_PROCESS, "loading pricing settings").Logger()
	logger.Info().Msg("loading pricing settings")
	settings, err := cfg.Pricing.Settings()
	if err != nil {
		err = fmt.Errorf("failed loading pricing settings with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	logger.Info().Object(constants.KEY_CONFIG, settings).Msg("loaded pricing settings")

	logger = logger.With().Str(constants.KEY_PROCESS, "initializing order service").Logger()
	logger.Info().Msg("initializing order service")
	orderService := service.NewOrderService(
		pool,
		repository.New(pool),
		cache,
		events,
		payment.NewClient(cfg.Payment),
		settings,
	)
	logger.Info().Msg("initialized order service")

	logger = logger.With().Str(constants.KEY_PROCESS, "initializing order controller").Logger()
	logger.Info().Msg("initializing order controller")
	controller.AttachOrderController(router, orderService, cfg.Application.SecretKey)
	logger.Info().Msg("initialized order controller")

	return orderService, nil
}
