package cmd

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/Alturino/storefront/internal/config"
	"github.com/Alturino/storefront/internal/constants"
	"github.com/Alturino/storefront/internal/infra"
	"github.com/Alturino/storefront/internal/log"
	inOtel "github.com/Alturino/storefront/internal/otel"
	notificationCmd "github.com/Alturino/storefront/notification/cmd"
)

func runNotification(c context.Context) {
	cfg := config.Get(c, constants.APP_STOREFRONT)

	logger := log.Get(filepath.Join("/var/log/", constants.APP_NOTIFICATION_SERVICE+".log"), cfg.Application).
		With().
		Str(constants.KEY_APP_NAME, constants.APP_NOTIFICATION_SERVICE).
		Str(constants.KEY_TAG, "main runNotification").
		Logger()

	logger = logger.With().Str(constants.KEY_PROCESS, "initializing otel sdk").Logger()
	logger.Info().Msg("initializing otel sdk")
	c = logger.WithContext(c)
	shutdownFuncs, err := inOtel.InitOtelSdk(c, constants.APP_NOTIFICATION_SERVICE, cfg.Otel)
	if err != nil {
		err = fmt.Errorf("failed initializing otel sdk with error=%w", err)
		logger.Error().Err(err).Msg(err.Error())
		return
	}
	defer func() {
		logger.Info().Msg("shutting down otel")
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(c), 5*time.Second)
		defer cancel()
		if err := inOtel.ShutdownOtel(shutdownCtx, shutdownFuncs); err != nil {
			err = fmt.Errorf("failed shutting down otel with error=%w", err)
			logger.Error().Err(err).Msg(err.Error())
		}
		logger.Info().Msg("shutdown otel")
	}()
	logger.Info().Msg("initialized otel sdk")

	logger = logger.With().Str(constants.KEY_PROCESS, "initializing cache").Logger()
	logger.Info().Msg("initializing cache")
	c = logger.WithContext(c)
	cache := infra.NewCacheClient(c, cfg.Cache)
	defer cache.Close()
	logger.Info().Msg("initialized cache")

	logger = logger.With().Str(constants.KEY_PROCESS, "initializing event bus").Logger()
	logger.Info().Msg("initializing event bus")
	c = logger.WithContext(c)
	bus, err := newBus(c, *cfg, cache)
	if err != nil {
		err = fmt.Errorf("failed initializing event bus with error=%w", err)
		logger.Error().Err(err).Msg(err.Error())
		return
	}
	defer bus.Close()
	logger.Info().Msg("initialized event bus")

	c = logger.WithContext(c)
	if err := notificationCmd.RunNotificationListener(c, bus); err != nil {
		logger.Error().Err(err).Msg(err.Error())
	}
}
