package repository_test

import (
	"context"
	"testing"
	"time"

	"cinema-pos/internal/data/entity"
	"cinema-pos/internal/data/repository"
	"cinema-pos/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
)

type OrderRepositoryIntegrationSuite struct {
	suite.Suite
	ctx       context.Context
	container *postgres.PostgresContainer
	db        database.PgxIface
	repo      repository.OrderRepository
}

func TestOrderRepositoryIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping postgres integration test in short mode")
	}
	suite.Run(t, new(OrderRepositoryIntegrationSuite))
}

func (s *OrderRepositoryIntegrationSuite) SetupSuite() {
	s.ctx = context.Background()

	container, err := postgres.Run(s.ctx, "postgres:17-alpine",
		postgres.WithDatabase("cinema_pos"),
		postgres.WithUsername("test_user"),
		postgres.WithPassword("test_password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	s.Require().NoError(err)
	s.container = container

	dsn, err := container.ConnectionString(s.ctx, "sslmode=disable")
	s.Require().NoError(err)
	s.Require().NoError(database.Migrate(dsn, "../../../migrations"))

	pool, err := pgxpool.New(s.ctx, dsn)
	s.Require().NoError(err)
	s.db = database.NewDB(pool)
	s.repo = repository.NewOrderRepository(s.db, zap.NewNop())
}

func (s *OrderRepositoryIntegrationSuite) TearDownSuite() {
	if s.db != nil {
		s.db.Close()
	}
	if s.container != nil {
		s.NoError(testcontainers.TerminateContainer(s.container))
	}
}

func (s *OrderRepositoryIntegrationSuite) SetupTest() {
	_, err := s.db.Exec(s.ctx, `TRUNCATE orders CASCADE`)
	s.Require().NoError(err)
}

func newOrder(sessionID uuid.UUID, code string, seats ...[2]int) *entity.Order {
	order := &entity.Order{
		BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedAt: time.Now().UTC().Truncate(time.Microsecond)},
		Code:       code,
		SessionID:  sessionID,
		FullCount:  len(seats),
		Total:      decimal.NewFromInt(int64(20 * len(seats))),
	}
	for _, seat := range seats {
		order.Tickets = append(order.Tickets, entity.OrderTicket{
			ID:         uuid.New(),
			SessionID:  sessionID,
			SeatRow:    seat[0],
			SeatColumn: seat[1],
			FareTier:   "FULL",
			UnitPrice:  decimal.NewFromInt(20),
		})
	}
	return order
}

func (s *OrderRepositoryIntegrationSuite) TestCreateAndFind() {
	sessionID := uuid.New()
	order := newOrder(sessionID, "ORD-20260314-190500-0001", [2]int{1, 2}, [2]int{1, 1})
	order.Snacks = []entity.OrderSnack{{
		ID:        uuid.New(),
		SnackID:   uuid.New(),
		Name:      "Popcorn",
		Quantity:  2,
		UnitPrice: decimal.RequireFromString("8.00"),
		Subtotal:  decimal.RequireFromString("16.00"),
	}}
	order.Total = decimal.RequireFromString("56.00")

	s.Require().NoError(s.repo.Create(s.ctx, order))

	found, err := s.repo.FindByID(s.ctx, order.ID)
	s.Require().NoError(err)
	s.Require().NotNil(found)

	s.Equal(order.Code, found.Code)
	s.True(order.Total.Equal(found.Total))
	s.Require().Len(found.Tickets, 2)
	// lines come back in seat order
	s.Equal(1, found.Tickets[0].SeatColumn)
	s.Equal(2, found.Tickets[1].SeatColumn)
	s.Require().Len(found.Snacks, 1)
	s.Equal("Popcorn", found.Snacks[0].Name)
	s.True(decimal.RequireFromString("16").Equal(found.Snacks[0].Subtotal))
}

func (s *OrderRepositoryIntegrationSuite) TestFindUnknownOrder() {
	found, err := s.repo.FindByID(s.ctx, uuid.New())

	s.NoError(err)
	s.Nil(found)
}

func (s *OrderRepositoryIntegrationSuite) TestSeatSoldTwiceRollsBack() {
	sessionID := uuid.New()
	s.Require().NoError(s.repo.Create(s.ctx, newOrder(sessionID, "ORD-20260314-190500-0001", [2]int{3, 3})))

	second := newOrder(sessionID, "ORD-20260314-190501-0002", [2]int{3, 4}, [2]int{3, 3})
	err := s.repo.Create(s.ctx, second)

	s.ErrorIs(err, repository.ErrSeatAlreadySold)
	count, err := s.repo.Count(s.ctx, &sessionID)
	s.Require().NoError(err)
	s.Equal(int64(1), count)

	// the same seat in another session is free
	s.NoError(s.repo.Create(s.ctx, newOrder(uuid.New(), "ORD-20260314-190502-0003", [2]int{3, 3})))
}

func (s *OrderRepositoryIntegrationSuite) TestFindPageBySession() {
	target, other := uuid.New(), uuid.New()
	s.Require().NoError(s.repo.Create(s.ctx, newOrder(target, "ORD-20260314-190500-0001", [2]int{1, 1})))
	s.Require().NoError(s.repo.Create(s.ctx, newOrder(other, "ORD-20260314-190500-0002", [2]int{1, 1})))
	s.Require().NoError(s.repo.Create(s.ctx, newOrder(target, "ORD-20260314-190500-0003", [2]int{1, 2})))

	page, err := s.repo.FindPage(s.ctx, &target, 10, 0)
	s.Require().NoError(err)
	s.Len(page, 2)
	for _, order := range page {
		s.Equal(target, order.SessionID)
	}

	all, err := s.repo.FindAll(s.ctx)
	s.Require().NoError(err)
	s.Len(all, 3)

	total, err := s.repo.Count(s.ctx, nil)
	s.Require().NoError(err)
	s.Equal(int64(3), total)
}
