package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/cubemart/backend/internal/domain/cart"
	"github.com/cubemart/backend/internal/infrastructure/config"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisStore implements cart.Store using Redis. Carts are stored as JSON
// under StorageNamespace-prefixed keys with a sliding TTL, so abandoned
// carts expire on their own.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// RedisStoreOption is a functional option for configuring the store
type RedisStoreOption func(*RedisStore)

// WithTTL sets how long an idle cart survives
func WithTTL(ttl time.Duration) RedisStoreOption {
	return func(s *RedisStore) {
		s.ttl = ttl
	}
}

// WithLogger sets the logger for the store
func WithLogger(logger *zap.Logger) RedisStoreOption {
	return func(s *RedisStore) {
		s.logger = logger
	}
}

// NewRedisStore creates a new Redis-backed cart store
func NewRedisStore(cfg config.RedisConfig, opts ...RedisStoreOption) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	store := &RedisStore{
		client: client,
		ttl:    720 * time.Hour,
		logger: zap.NewNop(),
	}

	for _, opt := range opts {
		opt(store)
	}

	return store, nil
}

// Load returns the cart for the given id, or an empty cart when none is stored
func (s *RedisStore) Load(ctx context.Context, cartID string) (*cart.Cart, error) {
	data, err := s.client.Get(ctx, s.key(cartID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return cart.New(), nil
		}
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	var c cart.Cart
	if err := json.Unmarshal(data, &c); err != nil {
		// A corrupt entry is unrecoverable; start the shopper over
		s.logger.Warn("Discarding unreadable cart",
			zap.String("cart_id", cartID),
			zap.Error(err))
		return cart.New(), nil
	}
	return &c, nil
}

// Save persists the cart and refreshes its TTL
func (s *RedisStore) Save(ctx context.Context, cartID string, c *cart.Cart) error {
	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to encode cart: %w", err)
	}

	if err := s.client.Set(ctx, s.key(cartID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save cart: %w", err)
	}
	return nil
}

// Delete removes the cart for the given id
func (s *RedisStore) Delete(ctx context.Context, cartID string) error {
	if err := s.client.Del(ctx, s.key(cartID)).Err(); err != nil {
		return fmt.Errorf("failed to delete cart: %w", err)
	}
	return nil
}

// Close closes the underlying Redis client
func (s *RedisStore) Close() error {
	return s.client.Close()
}

func (s *RedisStore) key(cartID string) string {
	return cart.StorageNamespace + ":" + cartID
}

// Ensure RedisStore implements cart.Store
var _ cart.Store = (*RedisStore)(nil)
