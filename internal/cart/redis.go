package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	"storefront-service/internal/models"

	"github.com/redis/go-redis/v9"
)

const cartTTL = 30 * 24 * time.Hour

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

func ConnectRedis(ctx context.Context, cfg RedisConfig) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     20,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return rdb, nil
}

func cartKey(email string) string {
	return "cart:" + email
}

func wishlistKey(email string) string {
	return "wishlist:" + email
}

// RedisStore keeps each cart as a JSON value under cart:{email}.
type RedisStore struct {
	redis *redis.Client
	ttl   time.Duration
}

func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{redis: rdb, ttl: cartTTL}
}

func (s *RedisStore) Get(ctx context.Context, email string) (*models.Cart, error) {
	cart := &models.Cart{UserEmail: email, Items: []models.CartItem{}}

	data, err := s.redis.Get(ctx, cartKey(email)).Bytes()
	switch {
	case errors.Is(err, redis.Nil):
		return cart, nil
	case err != nil:
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	if err := json.Unmarshal(data, &cart.Items); err != nil {
		return nil, fmt.Errorf("failed to decode cart: %w", err)
	}
	return cart, nil
}

func (s *RedisStore) Save(ctx context.Context, cart *models.Cart) error {
	if len(cart.Items) == 0 {
		return s.Clear(ctx, cart.UserEmail)
	}

	data, err := json.Marshal(cart.Items)
	if err != nil {
		return fmt.Errorf("failed to encode cart: %w", err)
	}
	if err := s.redis.Set(ctx, cartKey(cart.UserEmail), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save cart: %w", err)
	}
	return nil
}

func (s *RedisStore) Clear(ctx context.Context, email string) error {
	if err := s.redis.Del(ctx, cartKey(email)).Err(); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}

// RedisWishlist keeps each wishlist as a set under wishlist:{email}.
type RedisWishlist struct {
	redis *redis.Client
}

func NewRedisWishlist(rdb *redis.Client) *RedisWishlist {
	return &RedisWishlist{redis: rdb}
}

func (w *RedisWishlist) Add(ctx context.Context, email string, productID int) error {
	if err := w.redis.SAdd(ctx, wishlistKey(email), productID).Err(); err != nil {
		return fmt.Errorf("failed to add to wishlist: %w", err)
	}
	return nil
}

func (w *RedisWishlist) Remove(ctx context.Context, email string, productID int) error {
	if err := w.redis.SRem(ctx, wishlistKey(email), productID).Err(); err != nil {
		return fmt.Errorf("failed to remove from wishlist: %w", err)
	}
	return nil
}

func (w *RedisWishlist) List(ctx context.Context, email string) ([]int, error) {
	members, err := w.redis.SMembers(ctx, wishlistKey(email)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to load wishlist: %w", err)
	}

	ids := make([]int, 0, len(members))
	for _, m := range members {
		id, err := strconv.Atoi(m)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids, nil
}

func (w *RedisWishlist) Contains(ctx context.Context, email string, productID int) (bool, error) {
	ok, err := w.redis.SIsMember(ctx, wishlistKey(email), productID).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check wishlist: %w", err)
	}
	return ok, nil
}
