package cmd

import (
	"context"
	"fmt"
	"sync"

	"github.com/gorilla/mux"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/Alturino/storefront/cart/internal/controller"
	"github.com/Alturino/storefront/cart/internal/otel"
	"github.com/Alturino/storefront/cart/internal/service"
	"github.com/Alturino/storefront/cart/internal/store"
	"github.com/Alturino/storefront/cart/internal/worker"
	"github.com/Alturino/storefront/internal/config"
	"github.com/Alturino/storefront/internal/constants"
	inOtel "github.com/Alturino/storefront/internal/otel"
)

// AttachCartService mounts the cart session routes and starts the flush
// worker. The worker stops, after a final flush, when c is cancelled; wg is
// released once it has.
func AttachCartService(
	c context.Context,
	wg *sync.WaitGroup,
	router *mux.Router,
	cfg config.Config,
	cache *redis.Client,
	orders service.OrderCreator,
) error {
	c, span := otel.Tracer.Start(c, "AttachCartService")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_APP_NAME, constants.APP_CART_SERVICE).
		Str(constants.KEY_TAG, "main AttachCartService").
		Logger()

	logger = logger.With().Str(constants.KEY_PROCESS, "loading pricing settings").Logger()
	logger.Info().Msg("loading pricing settings")
	settings, err := cfg.Pricing.Settings()
	if err != nil {
		err = fmt.Errorf("failed loading pricing settings with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	logger.Info().Msg("loaded pricing settings")

	logger = logger.With().Str(constants.KEY_PROCESS, "starting flush worker").Logger()
	logger.Info().Msg("starting flush worker")
	cartStore := store.NewRedisStore(cache, cfg.Cart.KeyPrefix, cfg.Cart.TTL)
	flushWorker := worker.NewFlushWorker(cartStore, cfg.Cart.BatchSize, cfg.Cart.FlushInterval)
	wg.Add(1)
	go flushWorker.StartWorker(logger.WithContext(c), wg)
	span.AddEvent("started flush worker")
	logger.Info().Msg("started flush worker")

	logger = logger.With().Str(constants.KEY_PROCESS, "initializing cart controller").Logger()
	logger.Info().Msg("initializing cart controller")
	cartService := service.NewCartService(cartStore, flushWorker, orders, settings)
	controller.AttachCartController(router, cartService, cfg.Application.SecretKey)
	logger.Info().Msg("initialized cart controller")

	return nil
}
