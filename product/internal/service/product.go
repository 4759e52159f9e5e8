package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/Alturino/storefront/internal/constants"
	inErrors "github.com/Alturino/storefront/internal/errors"
	"github.com/Alturino/storefront/internal/localize"
	inOtel "github.com/Alturino/storefront/internal/otel"
	inRepository "github.com/Alturino/storefront/internal/repository"
	"github.com/Alturino/storefront/product/internal/otel"
	"github.com/Alturino/storefront/product/internal/repository"
	"github.com/Alturino/storefront/product/pkg/response"
)

const productCacheTTL = 10 * time.Minute

type ProductService struct {
	queries *inRepository.Queries
	cache   *redis.Client
}

func NewProductService(queries *inRepository.Queries, cache *redis.Client) *ProductService {
	return &ProductService{queries: queries, cache: cache}
}

// FindProductById resolves the product's localizable fields for lang. The
// cached row holds every language so one entry serves all of them.
func (svc *ProductService) FindProductById(
	c context.Context,
	id uuid.UUID,
	lang localize.Language,
) (response.Product, error) {
	c, span := otel.Tracer.Start(c, "ProductService FindProductById")
	defer span.End()

	cacheKey := fmt.Sprintf(constants.CACHE_KEY_PRODUCT, id.String())
	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "ProductService FindProductById").
		Str(constants.KEY_PRODUCT_ID, id.String()).
		Str(constants.KEY_LANGUAGE, string(lang)).
		Str(constants.KEY_CACHE_KEY, cacheKey).
		Logger()

	logger = logger.With().Str(constants.KEY_PROCESS, "finding product in cache").Logger()
	logger.Trace().Msg("finding product in cache")
	row := inRepository.FindProductByIdRow{}
	cached, err := svc.cache.Get(c, cacheKey).Bytes()
	if err == nil {
		if err = json.Unmarshal(cached, &row); err == nil {
			otel.CacheLookups.WithLabelValues(otel.CacheHit).Inc()
			span.AddEvent("found product in cache")
			logger.Trace().Msg("found product in cache")
			return repository.ResponseProduct(row, lang), nil
		}
	}
	if !errors.Is(err, redis.Nil) {
		err = fmt.Errorf("failed finding product in cache with error=%w", err)
		logger.Warn().Err(err).Msg(err.Error())
	}

	otel.CacheLookups.WithLabelValues(otel.CacheMiss).Inc()

	logger = logger.With().Str(constants.KEY_PROCESS, "finding product in database").Logger()
	logger.Trace().Msg("finding product in database")
	span.AddEvent("finding product in database")
	row, err = svc.queries.FindProductById(c, id)
	if errors.Is(err, pgx.ErrNoRows) {
		err = fmt.Errorf("failed finding product with error=%w", inErrors.ErrProductNotFound)
		inOtel.RecordError(err, span)
		logger.Info().Err(err).Msg(err.Error())
		return response.Product{}, err
	}
	if err != nil {
		err = fmt.Errorf("%w: failed finding product in database with error=%w", inErrors.ErrPersistence, err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Product{}, err
	}
	logger.Info().Msg("found product in database")

	logger = logger.With().Str(constants.KEY_PROCESS, "caching product").Logger()
	payload, err := json.Marshal(row)
	if err == nil {
		err = svc.cache.Set(c, cacheKey, payload, productCacheTTL).Err()
	}
	if err != nil {
		err = fmt.Errorf("failed caching product with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Warn().Err(err).Msg(err.Error())
	}

	return repository.ResponseProduct(row, lang), nil
}
