package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"cinema-pos/internal/sale"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// CartRepository keeps in-progress carts in redis. Each write refreshes the TTL,
// so an abandoned sale disappears on its own.
type CartRepository interface {
	Save(ctx context.Context, cart *sale.Cart) error
	FindByID(ctx context.Context, id uuid.UUID) (*sale.Cart, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type cartRepository struct {
	rdb redis.UniversalClient
	ttl time.Duration
	log *zap.Logger
}

func NewCartRepository(rdb redis.UniversalClient, ttl time.Duration, log *zap.Logger) CartRepository {
	return &cartRepository{
		rdb: rdb,
		ttl: ttl,
		log: log.With(zap.String("repository", "cart")),
	}
}

func cartKey(id uuid.UUID) string {
	return "cart:" + id.String()
}

func (r *cartRepository) Save(ctx context.Context, cart *sale.Cart) error {
	data, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("marshal cart %s: %w", cart.ID, err)
	}

	if err := r.rdb.Set(ctx, cartKey(cart.ID), data, r.ttl).Err(); err != nil {
		r.log.Error("Failed to save cart", zap.Error(err), zap.String("cart_id", cart.ID.String()))
		return fmt.Errorf("save cart %s: %w", cart.ID, err)
	}

	return nil
}

func (r *cartRepository) FindByID(ctx context.Context, id uuid.UUID) (*sale.Cart, error) {
	data, err := r.rdb.Get(ctx, cartKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to load cart", zap.Error(err), zap.String("cart_id", id.String()))
		return nil, fmt.Errorf("load cart %s: %w", id, err)
	}

	var cart sale.Cart
	if err := json.Unmarshal(data, &cart); err != nil {
		r.log.Error("Corrupt cart payload", zap.Error(err), zap.String("cart_id", id.String()))
		return nil, fmt.Errorf("decode cart %s: %w", id, err)
	}

	return &cart, nil
}

func (r *cartRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.rdb.Del(ctx, cartKey(id)).Err(); err != nil {
		r.log.Error("Failed to delete cart", zap.Error(err), zap.String("cart_id", id.String()))
		return fmt.Errorf("delete cart %s: %w", id, err)
	}
	return nil
}
