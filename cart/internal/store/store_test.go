package store

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alturino/storefront/cart/pkg/cart"
	inErrors "github.com/Alturino/storefront/internal/errors"
)

func newStore(t *testing.T) (*miniredis.Miniredis, *RedisStore) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return mr, NewRedisStore(client, "cart", time.Hour)
}

func snapshotOf(t *testing.T, lines ...string) cart.Snapshot {
	t.Helper()
	c := cart.New()
	for _, amount := range lines {
		price, err := cart.NewPrice(decimal.RequireFromString(amount))
		require.NoError(t, err)
		c.AddItem(uuid.New(), price, cart.One, "item "+amount, "")
	}
	return c.Snapshot()
}

func TestLoadMissingSession(t *testing.T) {
	_, s := newStore(t)

	_, err := s.Load(context.Background(), uuid.NewString())

	assert.ErrorIs(t, err, inErrors.ErrCacheMiss)
}

func TestSaveThenLoad(t *testing.T) {
	mr, s := newStore(t)
	c := context.Background()
	sessionID := uuid.NewString()
	snapshot := snapshotOf(t, "100", "50")

	require.NoError(t, s.Save(c, sessionID, snapshot))

	assert.True(t, mr.Exists("cart:"+sessionID))
	assert.Equal(t, time.Hour, mr.TTL("cart:"+sessionID))

	loaded, err := s.Load(c, sessionID)
	require.NoError(t, err)
	require.Len(t, loaded.Items, 2)
	for i := range snapshot.Items {
		assert.Equal(t, snapshot.Items[i].ProductID, loaded.Items[i].ProductID)
		assert.Equal(t, snapshot.Items[i].LineID, loaded.Items[i].LineID)
		assert.True(t, snapshot.Items[i].UnitPrice.Decimal().Equal(loaded.Items[i].UnitPrice.Decimal()))
		assert.Equal(t, snapshot.Items[i].Quantity.Int(), loaded.Items[i].Quantity.Int())
	}
}

func TestSaveEmptySnapshotDeletesKey(t *testing.T) {
	mr, s := newStore(t)
	c := context.Background()
	sessionID := uuid.NewString()

	require.NoError(t, s.Save(c, sessionID, snapshotOf(t, "10")))
	require.NoError(t, s.Save(c, sessionID, cart.Snapshot{}))

	assert.False(t, mr.Exists("cart:"+sessionID))
	_, err := s.Load(c, sessionID)
	assert.ErrorIs(t, err, inErrors.ErrCacheMiss)
}

func TestLoadRejectsCorruptSnapshot(t *testing.T) {
	mr, s := newStore(t)
	sessionID := uuid.NewString()
	require.NoError(t, mr.Set("cart:"+sessionID, `{"items":[{"unitPrice":"-1","quantity":1}]}`))

	_, err := s.Load(context.Background(), sessionID)

	require.Error(t, err)
	assert.NotErrorIs(t, err, inErrors.ErrCacheMiss)
}
