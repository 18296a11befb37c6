package sale

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
)

type MockCatalog struct {
	mock.Mock
}

func (m *MockCatalog) ListOrders(ctx context.Context) ([]Order, error) {
	args := m.Called(ctx)
	if fn, ok := args.Get(0).(func(context.Context) []Order); ok {
		return fn(ctx), args.Error(1)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Order), args.Error(1)
}

func (m *MockCatalog) ListSnackItems(ctx context.Context) ([]SnackItem, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]SnackItem), args.Error(1)
}

func (m *MockCatalog) CreateOrder(ctx context.Context, order *Order) (*Order, error) {
	args := m.Called(ctx, order)
	if fn, ok := args.Get(0).(func(context.Context, *Order) *Order); ok {
		return fn(ctx, order), args.Error(1)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Order), args.Error(1)
}

func (m *MockCatalog) PatchSnackStock(ctx context.Context, snackID uuid.UUID, newStock int) error {
	args := m.Called(ctx, snackID, newStock)
	return args.Error(0)
}

// saveOrder mimics the store assigning identity to the draft it receives.
func saveOrder(order *Order) *Order {
	saved := *order
	saved.ID = uuid.New()
	saved.Code = "ORD-20260314-190000-0001"
	return &saved
}

type CheckoutTestSuite struct {
	suite.Suite
	catalog   *MockCatalog
	processor *Processor
	cart      *Cart
	ctx       context.Context
	fixedNow  time.Time
}

func (s *CheckoutTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.fixedNow = time.Date(2026, 3, 14, 19, 5, 0, 0, time.UTC)
	s.catalog = new(MockCatalog)
	s.processor = NewProcessor(s.catalog, zap.NewNop()).WithClock(func() time.Time { return s.fixedNow })
	s.cart = NewCart(testSessionID, 20, testPricing, testOpenedAt)
}

func TestCheckoutSuite(t *testing.T) {
	suite.Run(t, new(CheckoutTestSuite))
}

func (s *CheckoutTestSuite) TestEmptyCartMakesNoCalls() {
	order, err := s.processor.Checkout(s.ctx, s.cart)

	s.Nil(order)
	s.ErrorIs(err, ErrEmptyCart)
	s.Equal(StateFailed, s.processor.State())
	s.catalog.AssertNotCalled(s.T(), "CreateOrder", mock.Anything, mock.Anything)
	s.catalog.AssertNotCalled(s.T(), "PatchSnackStock", mock.Anything, mock.Anything, mock.Anything)
}

// Room of 20 seats, (1,1) already sold. One FULL ticket at 20.00 plus two
// snacks at 8.00 out of a stock of 5.
func (s *CheckoutTestSuite) TestSeatAndSnackScenario() {
	prior := Order{
		ID:      uuid.New(),
		Tickets: []TicketLine{{SessionID: testSessionID, Seat: Seat{Row: 1, Column: 1}, Tier: FareFull, UnitPrice: dec("20")}},
	}
	occ := OccupiedSeats(testSessionID, []Order{prior})
	popcorn := newSnack("Popcorn", "8.00", 5)

	_, err := s.cart.ToggleSeat(Seat{Row: 1, Column: 1}, occ)
	s.Require().ErrorIs(err, ErrSeatUnavailable)
	_, err = s.cart.ToggleSeat(Seat{Row: 1, Column: 2}, occ)
	s.Require().NoError(err)
	s.Require().NoError(s.cart.AddSnack(popcorn, 2))

	grandAtCommit := s.cart.Totals().Grand

	var committed *Order
	s.catalog.On("CreateOrder", s.ctx, mock.AnythingOfType("*sale.Order")).
		Return(func(_ context.Context, o *Order) *Order {
			committed = saveOrder(o)
			return committed
		}, nil).Once()
	s.catalog.On("PatchSnackStock", s.ctx, popcorn.ID, 3).Return(nil).Once()

	afterPopcorn := popcorn
	afterPopcorn.Stock = 3
	s.catalog.On("ListSnackItems", s.ctx).Return([]SnackItem{afterPopcorn}, nil).Once()
	s.catalog.On("ListOrders", s.ctx).Return(func(context.Context) []Order {
		return []Order{prior, *committed}
	}, nil).Once()

	order, err := s.processor.Checkout(s.ctx, s.cart)

	s.Require().NoError(err)
	s.Equal(StateDone, s.processor.State())
	s.True(dec("36.00").Equal(order.Total), "total %s", order.Total)
	s.True(grandAtCommit.Equal(order.Total))
	s.Equal(1, order.FullCount)
	s.Equal(0, order.HalfCount)
	s.Equal(s.fixedNow, order.CreatedAt)
	s.True(s.cart.IsEmpty())
	s.Equal(3, s.cart.Stock[popcorn.ID])
	s.True(s.processor.Occupancy().Has(Seat{Row: 1, Column: 2}))
	s.Equal(18, RemainingCapacity(20, s.processor.Occupancy()))
	s.catalog.AssertExpectations(s.T())
}

func (s *CheckoutTestSuite) TestFareCountsMatchLines() {
	for col := 1; col <= 4; col++ {
		_, err := s.cart.ToggleSeat(Seat{Row: 1, Column: col}, nil)
		s.Require().NoError(err)
	}
	s.Require().NoError(s.cart.ChangeFareTier(Seat{Row: 1, Column: 2}, FareHalf))
	s.Require().NoError(s.cart.ChangeFareTier(Seat{Row: 1, Column: 4}, FareHalf))

	s.catalog.On("CreateOrder", s.ctx, mock.MatchedBy(func(o *Order) bool {
		return o.FullCount == 2 && o.HalfCount == 2 && o.Total.Equal(dec("60")) && len(o.Tickets) == 4
	})).Return(func(_ context.Context, o *Order) *Order { return saveOrder(o) }, nil).Once()
	s.catalog.On("ListSnackItems", s.ctx).Return([]SnackItem{}, nil)
	s.catalog.On("ListOrders", s.ctx).Return([]Order{}, nil)

	order, err := s.processor.Checkout(s.ctx, s.cart)

	s.Require().NoError(err)
	s.Equal(2, order.FullCount)
	s.Equal(2, order.HalfCount)
	s.catalog.AssertNotCalled(s.T(), "PatchSnackStock", mock.Anything, mock.Anything, mock.Anything)
}

func (s *CheckoutTestSuite) TestPersistFailureKeepsCart() {
	_, _ = s.cart.ToggleSeat(Seat{Row: 2, Column: 2}, nil)
	s.Require().NoError(s.cart.AddSnack(newSnack("Soda", "6.00", 4), 1))
	storeErr := errors.New("connection reset")

	s.catalog.On("CreateOrder", s.ctx, mock.Anything).Return(nil, storeErr).Once()

	order, err := s.processor.Checkout(s.ctx, s.cart)

	s.Nil(order)
	var persistErr *OrderPersistError
	s.Require().ErrorAs(err, &persistErr)
	s.ErrorIs(err, storeErr)
	s.Equal(StateFailed, s.processor.State())
	s.Len(s.cart.Tickets, 1)
	s.Len(s.cart.Snacks, 1)
	s.catalog.AssertNotCalled(s.T(), "PatchSnackStock", mock.Anything, mock.Anything, mock.Anything)
}

func (s *CheckoutTestSuite) TestStockSyncFailureKeepsOrder() {
	soda := newSnack("Soda", "6.00", 10)
	candy := newSnack("Candy", "3.00", 2)
	nachos := newSnack("Nachos", "12.00", 7)
	s.Require().NoError(s.cart.AddSnack(soda, 4))
	s.Require().NoError(s.cart.AddSnack(candy, 2))
	s.Require().NoError(s.cart.AddSnack(nachos, 1))

	s.catalog.On("CreateOrder", s.ctx, mock.Anything).
		Return(func(_ context.Context, o *Order) *Order { return saveOrder(o) }, nil).Once()
	s.catalog.On("PatchSnackStock", s.ctx, soda.ID, 6).Return(nil).Once()
	s.catalog.On("PatchSnackStock", s.ctx, candy.ID, 0).Return(errors.New("timeout")).Once()
	s.catalog.On("PatchSnackStock", s.ctx, nachos.ID, 6).Return(errors.New("not found")).Once()
	s.catalog.On("ListSnackItems", s.ctx).Return(nil, errors.New("unavailable")).Once()
	s.catalog.On("ListOrders", s.ctx).Return([]Order{}, nil).Once()

	order, err := s.processor.Checkout(s.ctx, s.cart)

	s.Require().NotNil(order)
	var syncErr *StockSyncError
	s.Require().ErrorAs(err, &syncErr)
	s.Equal(order.ID, syncErr.OrderID)
	s.Len(syncErr.Failures, 2)

	failed := map[uuid.UUID]int{}
	for _, f := range syncErr.Failures {
		failed[f.SnackID] = f.NewStock
	}
	s.Equal(map[uuid.UUID]int{candy.ID: 0, nachos.ID: 6}, failed)

	s.Equal(StateDone, s.processor.State())
	s.True(s.cart.IsEmpty())
	// snapshot refresh failed, the previous snapshot stays
	s.Equal(10, s.cart.Stock[soda.ID])
	s.catalog.AssertExpectations(s.T())
}
