package cart

import (
	"context"
	"testing"
	"time"

	"storefront-service/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return mr, rdb
}

func exerciseStore(t *testing.T, store Store) {
	ctx := context.Background()

	empty, err := store.Get(ctx, "ann@example.com")
	require.NoError(t, err)
	assert.Empty(t, empty.Items)
	assert.Equal(t, "ann@example.com", empty.UserEmail)

	c := &models.Cart{UserEmail: "ann@example.com"}
	AddItem(c, models.CartItem{ProductID: 1, Name: "Linen Shirt", Price: 40, Quantity: 2})
	require.NoError(t, store.Save(ctx, c))

	got, err := store.Get(ctx, "ann@example.com")
	require.NoError(t, err)
	assert.Equal(t, c.Items, got.Items)

	other, err := store.Get(ctx, "bob@example.com")
	require.NoError(t, err)
	assert.Empty(t, other.Items)

	require.NoError(t, store.Clear(ctx, "ann@example.com"))
	got, err = store.Get(ctx, "ann@example.com")
	require.NoError(t, err)
	assert.Empty(t, got.Items)
}

func exerciseWishlist(t *testing.T, w WishlistStore) {
	ctx := context.Background()

	require.NoError(t, w.Add(ctx, "ann@example.com", 7))
	require.NoError(t, w.Add(ctx, "ann@example.com", 3))
	require.NoError(t, w.Add(ctx, "ann@example.com", 7))

	ids, err := w.List(ctx, "ann@example.com")
	require.NoError(t, err)
	assert.Equal(t, []int{3, 7}, ids)

	ok, err := w.Contains(ctx, "ann@example.com", 3)
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, w.Remove(ctx, "ann@example.com", 3))
	ok, err = w.Contains(ctx, "ann@example.com", 3)
	require.NoError(t, err)
	assert.False(t, ok)

	ids, err = w.List(ctx, "bob@example.com")
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemoryStore())
}

func TestMemoryWishlist(t *testing.T) {
	exerciseWishlist(t, NewMemoryWishlist())
}

func TestRedisStore(t *testing.T) {
	_, rdb := newRedis(t)
	exerciseStore(t, NewRedisStore(rdb))
}

func TestRedisStore_KeyAndTTL(t *testing.T) {
	mr, rdb := newRedis(t)
	store := NewRedisStore(rdb)

	c := &models.Cart{UserEmail: "ann@example.com", Items: []models.CartItem{{LineID: "a", ProductID: 1, Quantity: 1}}}
	require.NoError(t, store.Save(context.Background(), c))

	assert.True(t, mr.Exists("cart:ann@example.com"))
	assert.Equal(t, cartTTL, mr.TTL("cart:ann@example.com"))

	mr.FastForward(cartTTL + time.Second)
	got, err := store.Get(context.Background(), "ann@example.com")
	require.NoError(t, err)
	assert.Empty(t, got.Items)
}

func TestRedisStore_CorruptValue(t *testing.T) {
	mr, rdb := newRedis(t)
	require.NoError(t, mr.Set("cart:ann@example.com", "{oops"))

	_, err := NewRedisStore(rdb).Get(context.Background(), "ann@example.com")
	assert.ErrorContains(t, err, "failed to decode cart")
}

func TestRedisWishlist(t *testing.T) {
	mr, rdb := newRedis(t)
	exerciseWishlist(t, NewRedisWishlist(rdb))

	members, err := mr.Members("wishlist:ann@example.com")
	require.NoError(t, err)
	assert.Equal(t, []string{"7"}, members)
}

func TestConnectRedis(t *testing.T) {
	mr := miniredis.RunT(t)

	rdb, err := ConnectRedis(context.Background(), RedisConfig{Addr: mr.Addr()})
	require.NoError(t, err)
	rdb.Close()

	_, err = ConnectRedis(context.Background(), RedisConfig{Addr: "127.0.0.1:1"})
	assert.ErrorContains(t, err, "redis ping failed")
}
