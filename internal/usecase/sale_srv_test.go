package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"cinema-pos/internal/data/entity"
	"cinema-pos/internal/data/repository"
	"cinema-pos/internal/dto/request"
	"cinema-pos/internal/mocks"
	"cinema-pos/internal/sale"
	"cinema-pos/pkg/broker"
	"cinema-pos/pkg/utils"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

type SaleServiceTestSuite struct {
	suite.Suite
	ctx       context.Context
	sessions  *mocks.MockSessionRepo
	rooms     *mocks.MockRoomRepo
	snacks    *mocks.MockSnackRepo
	orders    *mocks.MockOrderRepo
	carts     *mocks.InMemoryCartRepo
	publisher *mocks.MockPublisher
	service   *saleService

	session *entity.Session
	room    *entity.Room
	popcorn *entity.SnackItem
	prior   *entity.Order
}

func (s *SaleServiceTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.sessions = new(mocks.MockSessionRepo)
	s.rooms = new(mocks.MockRoomRepo)
	s.snacks = new(mocks.MockSnackRepo)
	s.orders = new(mocks.MockOrderRepo)
	s.carts = mocks.NewInMemoryCartRepo()
	s.publisher = new(mocks.MockPublisher)

	repo := &repository.Repository{
		Session: s.sessions,
		Room:    s.rooms,
		Snack:   s.snacks,
		Order:   s.orders,
		Cart:    s.carts,
	}
	config := &utils.Config{
		Pricing: utils.PricingConfig{FullPrice: dec("20.00"), HalfPrice: dec("10.00")},
	}
	s.service = NewSaleService(repo, s.publisher, config, zap.NewNop()).(*saleService)
	s.service.now = func() time.Time { return time.Date(2026, 3, 14, 19, 0, 0, 0, time.UTC) }

	s.room = &entity.Room{Base: entity.Base{ID: uuid.New()}, Number: 3, Capacity: 20}
	s.session = &entity.Session{
		BaseSimple: entity.BaseSimple{ID: uuid.New()},
		RoomID:     s.room.ID,
		MovieID:    uuid.New(),
	}
	s.popcorn = &entity.SnackItem{
		Base:      entity.Base{ID: uuid.New()},
		Name:      "Popcorn",
		UnitPrice: dec("8.00"),
		Stock:     5,
	}
	s.prior = &entity.Order{
		BaseSimple: entity.BaseSimple{ID: uuid.New()},
		SessionID:  s.session.ID,
		Tickets: []entity.OrderTicket{{
			SessionID: s.session.ID, SeatRow: 1, SeatColumn: 1, FareTier: "FULL", UnitPrice: dec("20.00"),
		}},
	}

	s.sessions.On("FindByID", mock.Anything, s.session.ID).Return(s.session, nil)
	s.rooms.On("FindByID", mock.Anything, s.room.ID).Return(s.room, nil)
	s.snacks.On("FindByID", mock.Anything, s.popcorn.ID).Return(s.popcorn, nil)
	s.orders.On("FindAll", mock.Anything).Return([]*entity.Order{s.prior}, nil)
}

func TestSaleServiceSuite(t *testing.T) {
	suite.Run(t, new(SaleServiceTestSuite))
}

func (s *SaleServiceTestSuite) openSale() string {
	s.snacks.On("FindAll", mock.Anything).Return([]*entity.SnackItem{s.popcorn}, nil).Once()

	resp, err := s.service.OpenSale(s.ctx, &request.OpenSaleRequest{SessionID: s.session.ID.String()})
	s.Require().NoError(err)
	return resp.ID
}

func (s *SaleServiceTestSuite) TestOpenSaleStartsFromDefaults() {
	s.snacks.On("FindAll", mock.Anything).Return([]*entity.SnackItem{s.popcorn}, nil).Once()

	resp, err := s.service.OpenSale(s.ctx, &request.OpenSaleRequest{SessionID: s.session.ID.String()})

	s.Require().NoError(err)
	s.Equal(sale.StateOpen, resp.State)
	s.Equal("20.00", resp.Pricing.Full)
	s.Equal("10.00", resp.Pricing.Half)
	s.Equal(20, resp.Capacity)
	s.Equal(19, resp.Remaining)
	s.Equal([]sale.Seat{{Row: 1, Column: 1}}, resp.OccupiedSeats)
	s.Equal("0.00", resp.Totals.Grand)
}

func (s *SaleServiceTestSuite) TestOpenSaleUnknownSession() {
	missing := uuid.New()
	s.sessions.On("FindByID", mock.Anything, missing).Return(nil, nil)

	_, err := s.service.OpenSale(s.ctx, &request.OpenSaleRequest{SessionID: missing.String()})

	s.EqualError(err, "session not found")
}

func (s *SaleServiceTestSuite) TestSeatAndSnackCheckout() {
	saleID := s.openSale()

	_, err := s.service.ToggleSeat(s.ctx, saleID, &request.SeatRequest{Row: 1, Column: 1})
	s.Require().ErrorIs(err, sale.ErrSeatUnavailable)

	_, err = s.service.ToggleSeat(s.ctx, saleID, &request.SeatRequest{Row: 1, Column: 2})
	s.Require().NoError(err)

	view, err := s.service.AddSnack(s.ctx, saleID, &request.AddSnackRequest{SnackID: s.popcorn.ID.String(), Quantity: 2})
	s.Require().NoError(err)
	s.Equal("36.00", view.Totals.Grand)

	s.orders.On("Create", mock.Anything, mock.MatchedBy(func(o *entity.Order) bool {
		return o.Total.Equal(dec("36")) &&
			o.FullCount == 1 &&
			len(o.Tickets) == 1 && o.Tickets[0].SeatRow == 1 && o.Tickets[0].SeatColumn == 2 &&
			len(o.Snacks) == 1 && o.Snacks[0].Quantity == 2
	})).Return(nil).Once()
	s.snacks.On("SetStock", mock.Anything, s.popcorn.ID, 3).Return(nil).Once()
	s.snacks.On("FindAll", mock.Anything).Return([]*entity.SnackItem{{
		Base: s.popcorn.Base, Name: "Popcorn", UnitPrice: dec("8.00"), Stock: 3,
	}}, nil).Once()
	s.publisher.On("Publish", mock.Anything, broker.QueueOrderCommitted, mock.MatchedBy(func(e OrderCommittedEvent) bool {
		return e.Total == "36.00" && cmp.Equal(e.Seats, []string{"1-2"})
	})).Return(nil).Once()

	resp, err := s.service.Checkout(s.ctx, saleID)

	s.Require().NoError(err)
	s.Equal(sale.StateDone, resp.State)
	s.Equal("36.00", resp.Order.Total)
	s.Nil(resp.StockSync)
	s.Empty(resp.Sale.Tickets)
	s.Empty(resp.Sale.Snacks)

	stored, _ := s.carts.FindByID(s.ctx, uuid.MustParse(saleID))
	s.True(stored.IsEmpty())
	s.Equal(3, stored.Stock[s.popcorn.ID])
	s.orders.AssertExpectations(s.T())
	s.snacks.AssertExpectations(s.T())
	s.publisher.AssertExpectations(s.T())
}

func (s *SaleServiceTestSuite) TestRejectedSnackLeavesStoredCart() {
	saleID := s.openSale()
	_, err := s.service.AddSnack(s.ctx, saleID, &request.AddSnackRequest{SnackID: s.popcorn.ID.String(), Quantity: 4})
	s.Require().NoError(err)

	_, err = s.service.AddSnack(s.ctx, saleID, &request.AddSnackRequest{SnackID: s.popcorn.ID.String(), Quantity: 2})

	var stockErr *sale.InsufficientStockError
	s.Require().ErrorAs(err, &stockErr)
	s.Equal(4, stockErr.Reserved)

	stored, _ := s.carts.FindByID(s.ctx, uuid.MustParse(saleID))
	s.Require().Len(stored.Snacks, 1)
	s.Equal(4, stored.Snacks[0].Quantity)
}

func (s *SaleServiceTestSuite) TestCheckoutEmptyCart() {
	saleID := s.openSale()

	resp, err := s.service.Checkout(s.ctx, saleID)

	s.Nil(resp)
	s.ErrorIs(err, sale.ErrEmptyCart)
	s.orders.AssertNotCalled(s.T(), "Create", mock.Anything, mock.Anything)
	s.publisher.AssertNotCalled(s.T(), "Publish", mock.Anything, mock.Anything, mock.Anything)
}

func (s *SaleServiceTestSuite) TestSeatSoldConcurrentlyKeepsCart() {
	saleID := s.openSale()
	_, err := s.service.ToggleSeat(s.ctx, saleID, &request.SeatRequest{Row: 2, Column: 4})
	s.Require().NoError(err)

	s.orders.On("Create", mock.Anything, mock.Anything).
		Return(errors.Join(errors.New("create order"), repository.ErrSeatAlreadySold)).Once()

	resp, err := s.service.Checkout(s.ctx, saleID)

	s.Nil(resp)
	var persistErr *sale.OrderPersistError
	s.Require().ErrorAs(err, &persistErr)
	s.ErrorIs(err, sale.ErrSeatUnavailable)

	stored, _ := s.carts.FindByID(s.ctx, uuid.MustParse(saleID))
	s.Len(stored.Tickets, 1)
}

func (s *SaleServiceTestSuite) TestStockSyncFailureIsReported() {
	saleID := s.openSale()
	_, err := s.service.AddSnack(s.ctx, saleID, &request.AddSnackRequest{SnackID: s.popcorn.ID.String(), Quantity: 1})
	s.Require().NoError(err)

	s.orders.On("Create", mock.Anything, mock.Anything).Return(nil).Once()
	s.snacks.On("SetStock", mock.Anything, s.popcorn.ID, 4).Return(errors.New("connection refused")).Once()
	s.snacks.On("FindAll", mock.Anything).Return([]*entity.SnackItem{s.popcorn}, nil).Once()
	s.publisher.On("Publish", mock.Anything, broker.QueueOrderCommitted, mock.Anything).Return(nil).Once()
	s.publisher.On("Publish", mock.Anything, broker.QueueStockReconciliation, mock.MatchedBy(func(e StockReconciliationEvent) bool {
		return e.SnackID == s.popcorn.ID && e.ExpectedStock == 4 && e.Reason == ReasonStockSyncFailed
	})).Return(errors.New("broker down")).Once()

	resp, err := s.service.Checkout(s.ctx, saleID)

	s.Require().NoError(err)
	s.Equal(sale.StateDone, resp.State)
	s.Require().NotNil(resp.StockSync)
	s.Require().Len(resp.StockSync.Failures, 1)
	s.Equal("Popcorn", resp.StockSync.Failures[0].Name)
	s.publisher.AssertExpectations(s.T())
}

func (s *SaleServiceTestSuite) TestCheckoutClosesSaleWhenClearedCartIsNotSaved() {
	saleID := s.openSale()
	_, err := s.service.AddSnack(s.ctx, saleID, &request.AddSnackRequest{SnackID: s.popcorn.ID.String(), Quantity: 2})
	s.Require().NoError(err)

	s.orders.On("Create", mock.Anything, mock.Anything).Return(nil).Once()
	s.snacks.On("SetStock", mock.Anything, s.popcorn.ID, 3).Return(nil).Once()
	s.snacks.On("FindAll", mock.Anything).Return([]*entity.SnackItem{s.popcorn}, nil).Once()
	s.publisher.On("Publish", mock.Anything, broker.QueueOrderCommitted, mock.Anything).Return(nil).Once()
	s.carts.SaveErr = errors.New("redis: connection reset")

	resp, err := s.service.Checkout(s.ctx, saleID)
	s.Require().NoError(err)
	s.Equal(sale.StateDone, resp.State)

	stored, _ := s.carts.FindByID(s.ctx, uuid.MustParse(saleID))
	s.Nil(stored)

	_, err = s.service.Checkout(s.ctx, saleID)
	s.EqualError(err, "sale not found")
	s.orders.AssertNumberOfCalls(s.T(), "Create", 1)
	s.snacks.AssertNumberOfCalls(s.T(), "SetStock", 1)
}

func (s *SaleServiceTestSuite) TestPricingAppliesToNewLinesOnly() {
	saleID := s.openSale()
	_, err := s.service.ToggleSeat(s.ctx, saleID, &request.SeatRequest{Row: 1, Column: 5})
	s.Require().NoError(err)

	_, err = s.service.SetPricing(s.ctx, saleID, &request.PricingRequest{Full: decPtr("25"), Half: decPtr("12.50")})
	s.Require().NoError(err)

	view, err := s.service.ToggleSeat(s.ctx, saleID, &request.SeatRequest{Row: 1, Column: 6})
	s.Require().NoError(err)

	s.Equal("20.00", view.Tickets[0].UnitPrice)
	s.Equal("25.00", view.Tickets[1].UnitPrice)
	s.Equal("45.00", view.Totals.Grand)
}

func (s *SaleServiceTestSuite) TestPricingRejectsSubCentAndMissingPrices() {
	saleID := s.openSale()

	_, err := s.service.SetPricing(s.ctx, saleID, &request.PricingRequest{Full: decPtr("12.345"), Half: decPtr("6")})
	s.ErrorContains(err, "Full: Must have at most two decimal places")

	_, err = s.service.SetPricing(s.ctx, saleID, &request.PricingRequest{})
	s.ErrorContains(err, "Full: This field is required; Half: This field is required")

	view, err := s.service.GetSale(s.ctx, saleID)
	s.Require().NoError(err)
	s.Equal("20.00", view.Pricing.Full)
	s.Equal("10.00", view.Pricing.Half)
}

func (s *SaleServiceTestSuite) TestUnknownSale() {
	_, err := s.service.GetSale(s.ctx, uuid.NewString())
	s.EqualError(err, "sale not found")

	_, err = s.service.GetSale(s.ctx, "not-a-uuid")
	s.ErrorContains(err, "invalid sale id")
}

func (s *SaleServiceTestSuite) TestCancelSale() {
	saleID := s.openSale()

	s.Require().NoError(s.service.CancelSale(s.ctx, saleID))

	_, err := s.service.GetSale(s.ctx, saleID)
	s.EqualError(err, "sale not found")
}
