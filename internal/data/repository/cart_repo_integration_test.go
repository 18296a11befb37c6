package repository_test

import (
	"context"
	"testing"
	"time"

	"cinema-pos/internal/data/repository"
	"cinema-pos/internal/sale"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
	"go.uber.org/zap"
)

func TestCartRepositoryRedis(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping redis integration test in short mode")
	}

	ctx := context.Background()
	container, err := tcredis.Run(ctx, "redis:7")
	require.NoError(t, err)
	t.Cleanup(func() { _ = testcontainers.TerminateContainer(container) })

	uri, err := container.ConnectionString(ctx)
	require.NoError(t, err)
	opts, err := redis.ParseURL(uri)
	require.NoError(t, err)
	rdb := redis.NewClient(opts)
	t.Cleanup(func() { _ = rdb.Close() })

	repo := repository.NewCartRepository(rdb, 2*time.Second, zap.NewNop())

	pricing := sale.NewPricingPolicy(decimal.NewFromInt(20), decimal.NewFromInt(10))
	cart := sale.NewCart(uuid.New(), 30, pricing, time.Now().UTC())
	_, err = cart.ToggleSeat(sale.Seat{Row: 3, Column: 3}, nil)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, cart))

	found, err := repo.FindByID(ctx, cart.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	require.True(t, found.HasSeat(sale.Seat{Row: 3, Column: 3}))

	ttl, err := rdb.TTL(ctx, "cart:"+cart.ID.String()).Result()
	require.NoError(t, err)
	require.Greater(t, ttl, time.Duration(0))

	// an abandoned cart expires
	require.Eventually(t, func() bool {
		gone, err := repo.FindByID(ctx, cart.ID)
		return err == nil && gone == nil
	}, 10*time.Second, 250*time.Millisecond)

	require.NoError(t, repo.Save(ctx, cart))
	require.NoError(t, repo.Delete(ctx, cart.ID))
	deleted, err := repo.FindByID(ctx, cart.ID)
	require.NoError(t, err)
	require.Nil(t, deleted)
}
