package usecase

import (
	"context"
	"errors"
	"fmt"

	"cinema-pos/internal/data/entity"
	"cinema-pos/internal/data/repository"
	"cinema-pos/internal/sale"
	"cinema-pos/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// catalogAccessor serves the checkout engine from the SQL repositories.
type catalogAccessor struct {
	repo *repository.Repository
	log  *zap.Logger
}

func newCatalogAccessor(repo *repository.Repository, log *zap.Logger) *catalogAccessor {
	return &catalogAccessor{
		repo: repo,
		log:  log.With(zap.String("component", "catalog")),
	}
}

var _ sale.Catalog = (*catalogAccessor)(nil)

func (c *catalogAccessor) ListOrders(ctx context.Context) ([]sale.Order, error) {
	orders, err := c.repo.Order.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]sale.Order, len(orders))
	for i, order := range orders {
		result[i] = toSaleOrder(order)
	}
	return result, nil
}

func (c *catalogAccessor) ListSnackItems(ctx context.Context) ([]sale.SnackItem, error) {
	snacks, err := c.repo.Snack.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]sale.SnackItem, len(snacks))
	for i, snack := range snacks {
		items[i] = toSnackItem(snack)
	}
	return items, nil
}

// CreateOrder assigns identity and code, then stores the order with all its
// lines. A seat sold by a concurrent sale surfaces as sale.ErrSeatUnavailable.
func (c *catalogAccessor) CreateOrder(ctx context.Context, order *sale.Order) (*sale.Order, error) {
	saved := *order
	saved.ID = uuid.New()
	saved.Code = utils.GenerateOrderCode(order.CreatedAt)

	if err := c.repo.Order.Create(ctx, toOrderEntity(&saved)); err != nil {
		if errors.Is(err, repository.ErrSeatAlreadySold) {
			return nil, fmt.Errorf("%w: %w", sale.ErrSeatUnavailable, err)
		}
		return nil, err
	}

	return &saved, nil
}

func (c *catalogAccessor) PatchSnackStock(ctx context.Context, snackID uuid.UUID, newStock int) error {
	return c.repo.Snack.SetStock(ctx, snackID, newStock)
}

// occupancy reads every order and resolves the seats taken in sessionID.
func (c *catalogAccessor) occupancy(ctx context.Context, sessionID uuid.UUID) (sale.Occupancy, error) {
	orders, err := c.ListOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return sale.OccupiedSeats(sessionID, orders), nil
}

// ==================== MAPPERS ====================

func toSnackItem(snack *entity.SnackItem) sale.SnackItem {
	return sale.SnackItem{
		ID:          snack.ID,
		Name:        snack.Name,
		Description: snack.Description,
		UnitPrice:   snack.UnitPrice,
		Stock:       snack.Stock,
	}
}

func toSaleOrder(order *entity.Order) sale.Order {
	tickets := make([]sale.TicketLine, len(order.Tickets))
	for i, t := range order.Tickets {
		tickets[i] = sale.TicketLine{
			SessionID: t.SessionID,
			Seat:      sale.Seat{Row: t.SeatRow, Column: t.SeatColumn},
			Tier:      sale.FareTier(t.FareTier),
			UnitPrice: t.UnitPrice,
		}
	}

	snacks := make([]sale.SnackLine, len(order.Snacks))
	for i, s := range order.Snacks {
		snacks[i] = sale.SnackLine{
			SnackID:   s.SnackID,
			Name:      s.Name,
			Quantity:  s.Quantity,
			UnitPrice: s.UnitPrice,
			Subtotal:  s.Subtotal,
		}
	}

	return sale.Order{
		ID:        order.ID,
		Code:      order.Code,
		SessionID: order.SessionID,
		Tickets:   tickets,
		Snacks:    snacks,
		FullCount: order.FullCount,
		HalfCount: order.HalfCount,
		Total:     order.Total,
		CreatedAt: order.CreatedAt,
	}
}

func toOrderEntity(order *sale.Order) *entity.Order {
	tickets := make([]entity.OrderTicket, len(order.Tickets))
	for i, t := range order.Tickets {
		tickets[i] = entity.OrderTicket{
			ID:         uuid.New(),
			OrderID:    order.ID,
			SessionID:  t.SessionID,
			SeatRow:    t.Seat.Row,
			SeatColumn: t.Seat.Column,
			FareTier:   string(t.Tier),
			UnitPrice:  t.UnitPrice,
		}
	}

	snacks := make([]entity.OrderSnack, len(order.Snacks))
	for i, s := range order.Snacks {
		snacks[i] = entity.OrderSnack{
			ID:        uuid.New(),
			OrderID:   order.ID,
			SnackID:   s.SnackID,
			Name:      s.Name,
			Quantity:  s.Quantity,
			UnitPrice: s.UnitPrice,
			Subtotal:  s.Subtotal,
		}
	}

	return &entity.Order{
		BaseSimple: entity.BaseSimple{
			ID:        order.ID,
			CreatedAt: order.CreatedAt,
		},
		Code:      order.Code,
		SessionID: order.SessionID,
		FullCount: order.FullCount,
		HalfCount: order.HalfCount,
		Total:     order.Total,
		Tickets:   tickets,
		Snacks:    snacks,
	}
}
