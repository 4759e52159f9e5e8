package infra

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"

	"github.com/Alturino/storefront/internal/config"
	"github.com/Alturino/storefront/internal/constants"
	"github.com/Alturino/storefront/internal/otel"
)

const cachePingTimeout = 5 * time.Second

var (
	cacheOnce sync.Once
	cache     *redis.Client
)

// NewCacheClient returns the process wide redis client holding cart
// sessions, the product and order caches and, with the redis broker driver,
// order events. Any failure here is fatal.
func NewCacheClient(c context.Context, cfg config.Cache) *redis.Client {
	c, span := otel.Tracer.Start(c, "main NewCacheClient")
	defer span.End()

	cacheOnce.Do(func() {
		logger := zerolog.Ctx(c).
			With().
			Str(constants.KEY_TAG, "main NewCacheClient").
			Str("addr", cfg.Addr()).
			Logger()

		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Addr(),
			Password: cfg.Password,
			DB:       cfg.Database,
			PoolSize: cfg.PoolSize,
		})

		logger = logger.With().Str(constants.KEY_PROCESS, "instrumenting redis client").Logger()
		logger.Info().Msg("instrumenting redis client")
		if err := redisotel.InstrumentTracing(client, redisotel.WithAttributes(semconv.DBSystemRedis)); err != nil {
			err = fmt.Errorf("failed instrumenting redis tracing with error=%w", err)
			otel.RecordError(err, span)
			logger.Fatal().Err(err).Msg(err.Error())
		}
		if err := redisotel.InstrumentMetrics(client, redisotel.WithAttributes(semconv.DBSystemRedis)); err != nil {
			err = fmt.Errorf("failed instrumenting redis metrics with error=%w", err)
			otel.RecordError(err, span)
			logger.Fatal().Err(err).Msg(err.Error())
		}
		logger.Info().Msg("instrumented redis client")

		logger = logger.With().Str(constants.KEY_PROCESS, "pinging redis").Logger()
		logger.Info().Msg("pinging redis")
		pingCtx, cancel := context.WithTimeout(c, cachePingTimeout)
		defer cancel()
		if err := client.Ping(pingCtx).Err(); err != nil {
			err = fmt.Errorf("failed pinging redis with error=%w", err)
			otel.RecordError(err, span)
			logger.Fatal().Err(err).Msg(err.Error())
		}
		logger.Info().Msg("pinged redis")

		cache = client
	})
	return cache
}
