package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/Alturino/storefront/internal/constants"
	"github.com/Alturino/storefront/internal/event"
	"github.com/Alturino/storefront/notification/internal/listener"
)

// RunNotificationListener consumes order events until c is done. A cancelled
// context is a clean stop, not an error.
func RunNotificationListener(c context.Context, subscriber event.Subscriber) error {
	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_APP_NAME, constants.APP_NOTIFICATION_SERVICE).
		Str(constants.KEY_TAG, "main RunNotificationListener").
		Str(constants.KEY_PROCESS, "listening order events").
		Logger()

	logger.Info().Msg("listening order events")
	c = logger.WithContext(c)
	err := listener.NewListener(subscriber, listener.LogNotifier{}).Run(c)
	if err != nil && !errors.Is(err, context.Canceled) {
		err = fmt.Errorf("failed listening order events with error=%w", err)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	logger.Info().Msg("stopped listening order events")
	return nil
}
