package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"cinema-pos/internal/data/repository"
	"cinema-pos/internal/mocks"
	"cinema-pos/internal/sale"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
)

type CartRepositoryTestSuite struct {
	suite.Suite
	ctx  context.Context
	rdb  *mocks.MockRedisClient
	repo repository.CartRepository
	cart *sale.Cart
}

func (s *CartRepositoryTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.rdb = new(mocks.MockRedisClient)
	s.repo = repository.NewCartRepository(s.rdb, 30*time.Minute, zap.NewNop())

	pricing := sale.NewPricingPolicy(decimal.RequireFromString("20.00"), decimal.RequireFromString("10.00"))
	s.cart = sale.NewCart(uuid.New(), 20, pricing, time.Date(2026, 3, 14, 19, 0, 0, 0, time.UTC))
}

func TestCartRepositorySuite(t *testing.T) {
	suite.Run(t, new(CartRepositoryTestSuite))
}

func (s *CartRepositoryTestSuite) TestSaveThenFind() {
	_, err := s.cart.ToggleSeat(sale.Seat{Row: 1, Column: 4}, nil)
	s.Require().NoError(err)
	popcorn := sale.SnackItem{ID: uuid.New(), Name: "Popcorn", UnitPrice: decimal.RequireFromString("8.00"), Stock: 5}
	s.Require().NoError(s.cart.AddSnack(popcorn, 2))

	key := "cart:" + s.cart.ID.String()
	var stored []byte
	s.rdb.On("Set", s.ctx, key, mock.Anything, 30*time.Minute).
		Run(func(args mock.Arguments) { stored = args.Get(2).([]byte) }).
		Return(redis.NewStatusResult("OK", nil)).Once()

	s.Require().NoError(s.repo.Save(s.ctx, s.cart))

	s.rdb.On("Get", s.ctx, key).Return(redis.NewStringResult(string(stored), nil)).Once()

	found, err := s.repo.FindByID(s.ctx, s.cart.ID)

	s.Require().NoError(err)
	s.Require().NotNil(found)
	s.Equal(s.cart.ID, found.ID)
	s.Equal(s.cart.SessionID, found.SessionID)
	s.Equal(s.cart.Tickets[0].Seat, found.Tickets[0].Seat)
	s.Equal(2, found.Guard().ReservedInCart(popcorn.ID))
	s.Equal(5, found.Stock[popcorn.ID])
	s.True(s.cart.Totals().Grand.Equal(found.Totals().Grand))
	s.True(s.cart.OpenedAt.Equal(found.OpenedAt))
	s.rdb.AssertExpectations(s.T())
}

func (s *CartRepositoryTestSuite) TestFindMissingCart() {
	id := uuid.New()
	s.rdb.On("Get", s.ctx, "cart:"+id.String()).Return(redis.NewStringResult("", redis.Nil)).Once()

	found, err := s.repo.FindByID(s.ctx, id)

	s.NoError(err)
	s.Nil(found)
}

func (s *CartRepositoryTestSuite) TestFindCorruptCart() {
	id := uuid.New()
	s.rdb.On("Get", s.ctx, "cart:"+id.String()).Return(redis.NewStringResult("{not json", nil)).Once()

	found, err := s.repo.FindByID(s.ctx, id)

	s.Nil(found)
	s.ErrorContains(err, "decode cart")
}

func (s *CartRepositoryTestSuite) TestSaveFailure() {
	s.rdb.On("Set", s.ctx, mock.Anything, mock.Anything, mock.Anything).
		Return(redis.NewStatusResult("", errors.New("connection refused"))).Once()

	err := s.repo.Save(s.ctx, s.cart)

	s.ErrorContains(err, "connection refused")
}

func (s *CartRepositoryTestSuite) TestDelete() {
	s.rdb.On("Del", s.ctx, []string{"cart:" + s.cart.ID.String()}).Return(redis.NewIntResult(1, nil)).Once()

	s.NoError(s.repo.Delete(s.ctx, s.cart.ID))
	s.rdb.AssertExpectations(s.T())
}
