package session

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aluminiucasa-lang/aluminiucasa-lang-game-planet-store/internal/cart"
	"github.com/aluminiucasa-lang/aluminiucasa-lang-game-planet-store/internal/checkout"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) (*RedisStore, *miniredis.Miniredis, func()) {
	mr := miniredis.RunT(t)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	store := NewRedisStore(client)

	cleanup := func() {
		client.Close()
		mr.Close()
	}

	return store, mr, cleanup
}

func sampleSnapshot() *Snapshot {
	c := cart.New()
	c.Add(cart.Item{ID: 3, Name: "Console Nintendo Switch OLED - Branco", Brand: "Nintendo", Price: 2446.99})
	c.Add(cart.Item{ID: 3, Price: 2446.99})

	return &Snapshot{
		Cart:      c.Snapshot(),
		Checkout:  checkout.State{Step: checkout.StepPayment},
		UpdatedAt: time.Now().UTC(),
	}
}

func TestRedisStore_SetGet(t *testing.T) {
	store, _, cleanup := setupTestRedis(t)
	defer cleanup()

	ctx := context.Background()
	require.NoError(t, store.Set(ctx, "s1", sampleSnapshot()))

	got, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, got.Cart.Lines, 1)
	assert.Equal(t, 2, got.Cart.Lines[0].Quantity)
	assert.Equal(t, checkout.StepPayment, got.Checkout.Step)
}

func TestRedisStore_CacheMiss(t *testing.T) {
	store, _, cleanup := setupTestRedis(t)
	defer cleanup()

	got, err := store.Get(context.Background(), "nonexistent")
	assert.ErrorIs(t, err, ErrCacheMiss)
	assert.Nil(t, got)
}

func TestRedisStore_InvalidJSON(t *testing.T) {
	store, mr, cleanup := setupTestRedis(t)
	defer cleanup()

	data, err := json.Marshal(sampleSnapshot())
	require.NoError(t, err)
	require.NoError(t, mr.Set(snapshotKey("s1"), string(data[:10])))

	_, err = store.Get(context.Background(), "s1")
	require.ErrorContains(t, err, "unmarshal session failed")
}

func TestRedisStore_SetAppliesTTL(t *testing.T) {
	store, mr, cleanup := setupTestRedis(t)
	defer cleanup()

	require.NoError(t, store.Set(context.Background(), "s1", sampleSnapshot()))

	ttl := mr.TTL(snapshotKey("s1"))
	assert.GreaterOrEqual(t, ttl, 24*time.Hour)
	assert.LessOrEqual(t, ttl, 24*time.Hour+30*time.Minute)
}

func TestRedisStore_Delete(t *testing.T) {
	store, mr, cleanup := setupTestRedis(t)
	defer cleanup()

	ctx := context.Background()
	require.NoError(t, store.Set(ctx, "s1", sampleSnapshot()))
	require.NoError(t, store.Delete(ctx, "s1"))

	assert.False(t, mr.Exists(snapshotKey("s1")))
}
