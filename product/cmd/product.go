package cmd

import (
	"context"

	"github.com/gorilla/mux"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/Alturino/storefront/internal/constants"
	"github.com/Alturino/storefront/internal/repository"
	"github.com/Alturino/storefront/product/internal/controller"
	"github.com/Alturino/storefront/product/internal/otel"
	"github.com/Alturino/storefront/product/internal/service"
)

func AttachProductService(
	c context.Context,
	router *mux.Router,
	queries *repository.Queries,
	cache *redis.Client,
) {
	c, span := otel.Tracer.Start(c, "AttachProductService")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_APP_NAME, constants.APP_PRODUCT_SERVICE).
		Str(constants.KEY_TAG, "main AttachProductService").
		Str(constants.KEY_PROCESS, "initializing product controller").
		Logger()

	logger.Info().Msg("initializing product controller")
	controller.AttachProductController(router, service.NewProductService(queries, cache))
	logger.Info().Msg("initialized product controller")
}
