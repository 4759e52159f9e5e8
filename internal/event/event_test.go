package event

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisBusDeliversPublishedEvent(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	bus := NewRedisBus(client, "test.order-events")

	c, cancel := context.WithCancel(context.Background())
	defer cancel()

	var mu sync.Mutex
	received := []OrderEvent{}
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = bus.Subscribe(c, func(c context.Context, event OrderEvent) error {
			mu.Lock()
			defer mu.Unlock()
			received = append(received, event)
			return nil
		})
	}()

	require.Eventually(t, func() bool {
		return mr.PubSubNumSub("test.order-events")["test.order-events"] == 1
	}, 2*time.Second, 10*time.Millisecond)

	orderID := uuid.New()
	err := bus.Publish(context.Background(), OrderEvent{
		Type:    OrderCreated,
		OrderID: orderID,
		Status:  "PENDING",
		Total:   decimal.RequireFromString("322.50"),
	})
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(received) == 1
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	<-done

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, OrderCreated, received[0].Type)
	assert.Equal(t, orderID, received[0].OrderID)
	assert.NotEqual(t, uuid.Nil, received[0].ID)
	assert.False(t, received[0].OccurredAt.IsZero())
	assert.True(t, decimal.RequireFromString("322.50").Equal(received[0].Total))
}

func TestDecodeRejectsGarbage(t *testing.T) {
	_, _, err := decode(context.Background(), []byte("not json"))
	assert.Error(t, err)
}

func TestEncodeKeepsGivenId(t *testing.T) {
	id := uuid.New()
	payload, err := encode(context.Background(), OrderEvent{ID: id, Type: OrderStatusChanged})
	require.NoError(t, err)

	_, event, err := decode(context.Background(), payload)
	require.NoError(t, err)
	assert.Equal(t, id, event.ID)
	assert.Equal(t, OrderStatusChanged, event.Type)
}
