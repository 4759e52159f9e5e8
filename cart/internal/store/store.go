// Package store persists cart snapshots in the session key-value store.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/Alturino/storefront/cart/internal/otel"
	"github.com/Alturino/storefront/cart/pkg/cart"
	"github.com/Alturino/storefront/internal/constants"
	inErrors "github.com/Alturino/storefront/internal/errors"
	inOtel "github.com/Alturino/storefront/internal/otel"
)

type RedisStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, prefix string, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, prefix: prefix, ttl: ttl}
}

func (s *RedisStore) Key(sessionID string) string {
	return fmt.Sprintf("%s:%s", s.prefix, sessionID)
}

// Load returns errors.ErrCacheMiss when nothing is stored for sessionID.
func (s *RedisStore) Load(c context.Context, sessionID string) (cart.Snapshot, error) {
	c, span := otel.Tracer.Start(c, "RedisStore Load")
	defer span.End()

	key := s.Key(sessionID)
	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "RedisStore Load").
		Str(constants.KEY_CACHE_KEY, key).
		Str(constants.KEY_PROCESS, "loading cart snapshot").
		Logger()

	logger.Trace().Msg("loading cart snapshot")
	payload, err := s.client.Get(c, key).Bytes()
	if errors.Is(err, redis.Nil) {
		logger.Trace().Msg("cart snapshot not found")
		return cart.Snapshot{}, inErrors.ErrCacheMiss
	}
	if err != nil {
		err = fmt.Errorf("failed loading cart snapshot with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return cart.Snapshot{}, err
	}

	snapshot := cart.Snapshot{}
	if err = json.Unmarshal(payload, &snapshot); err != nil {
		err = fmt.Errorf("failed unmarshaling cart snapshot with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return cart.Snapshot{}, err
	}
	logger.Trace().Int(constants.KEY_CART_ITEMS_COUNT, len(snapshot.Items)).Msg("loaded cart snapshot")

	return snapshot, nil
}

// Save overwrites the stored snapshot. An empty snapshot deletes the key.
func (s *RedisStore) Save(c context.Context, sessionID string, snapshot cart.Snapshot) error {
	c, span := otel.Tracer.Start(c, "RedisStore Save")
	defer span.End()

	key := s.Key(sessionID)
	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "RedisStore Save").
		Str(constants.KEY_CACHE_KEY, key).
		Int(constants.KEY_CART_ITEMS_COUNT, len(snapshot.Items)).
		Logger()

	if len(snapshot.Items) == 0 {
		logger = logger.With().Str(constants.KEY_PROCESS, "deleting cart snapshot").Logger()
		if err := s.client.Del(c, key).Err(); err != nil {
			err = fmt.Errorf("failed deleting cart snapshot with error=%w", err)
			inOtel.RecordError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			return err
		}
		logger.Trace().Msg("deleted cart snapshot")
		return nil
	}

	logger = logger.With().Str(constants.KEY_PROCESS, "saving cart snapshot").Logger()
	payload, err := json.Marshal(snapshot)
	if err != nil {
		err = fmt.Errorf("failed marshaling cart snapshot with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	if err = s.client.Set(c, key, payload, s.ttl).Err(); err != nil {
		err = fmt.Errorf("failed saving cart snapshot with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	logger.Trace().Msg("saved cart snapshot")

	return nil
}
