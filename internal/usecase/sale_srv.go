package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cinema-pos/internal/data/repository"
	"cinema-pos/internal/dto/request"
	"cinema-pos/internal/dto/response"
	"cinema-pos/internal/sale"
	"cinema-pos/pkg/broker"
	"cinema-pos/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SaleService drives a cashier's cart. Carts live in redis between requests;
// every mutation loads, changes and saves the whole cart.
type SaleService interface {
	OpenSale(ctx context.Context, req *request.OpenSaleRequest) (*response.SaleResponse, error)
	GetSale(ctx context.Context, saleID string) (*response.SaleResponse, error)
	ToggleSeat(ctx context.Context, saleID string, req *request.SeatRequest) (*response.SaleResponse, error)
	ChangeFareTier(ctx context.Context, saleID string, req *request.FareTierRequest) (*response.SaleResponse, error)
	RemoveTicket(ctx context.Context, saleID string, req *request.SeatRequest) (*response.SaleResponse, error)
	AddSnack(ctx context.Context, saleID string, req *request.AddSnackRequest) (*response.SaleResponse, error)
	RemoveSnack(ctx context.Context, saleID string, index int) (*response.SaleResponse, error)
	SetPricing(ctx context.Context, saleID string, req *request.PricingRequest) (*response.SaleResponse, error)
	Checkout(ctx context.Context, saleID string) (*response.CheckoutResponse, error)
	CancelSale(ctx context.Context, saleID string) error
}

type saleService struct {
	repo      *repository.Repository
	catalog   *catalogAccessor
	publisher broker.Publisher
	pricing   sale.PricingPolicy
	now       func() time.Time
	log       *zap.Logger
}

func NewSaleService(
	repo *repository.Repository,
	publisher broker.Publisher,
	config *utils.Config,
	log *zap.Logger,
) SaleService {
	return &saleService{
		repo:      repo,
		catalog:   newCatalogAccessor(repo, log),
		publisher: publisher,
		pricing:   sale.NewPricingPolicy(config.Pricing.FullPrice, config.Pricing.HalfPrice),
		now:       time.Now,
		log:       log.With(zap.String("service", "sale")),
	}
}

// OpenSale starts an empty cart for a session at the configured default prices.
func (s *saleService) OpenSale(ctx context.Context, req *request.OpenSaleRequest) (*response.SaleResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	sessionID, err := uuid.Parse(req.SessionID)
	if err != nil {
		return nil, fmt.Errorf("invalid session id: %w", err)
	}

	session, err := s.repo.Session.FindByID(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	if session == nil {
		return nil, fmt.Errorf("session not found")
	}

	room, err := s.repo.Room.FindByID(ctx, session.RoomID)
	if err != nil {
		return nil, fmt.Errorf("get room: %w", err)
	}
	if room == nil {
		return nil, fmt.Errorf("room not found")
	}

	cart := sale.NewCart(session.ID, room.Capacity, s.pricing, s.now())

	items, err := s.catalog.ListSnackItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("list snack items: %w", err)
	}
	cart.RefreshStock(items)

	occ, err := s.catalog.occupancy(ctx, session.ID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Cart.Save(ctx, cart); err != nil {
		return nil, fmt.Errorf("open sale: %w", err)
	}

	s.log.Info("Sale opened",
		zap.String("sale_id", cart.ID.String()),
		zap.String("session_id", session.ID.String()),
		zap.Int("capacity", room.Capacity),
		zap.Int("occupied", occ.Len()),
	)

	resp := response.SaleToResponse(cart, sale.StateOpen, occ)
	return &resp, nil
}

func (s *saleService) GetSale(ctx context.Context, saleID string) (*response.SaleResponse, error) {
	cart, err := s.loadCart(ctx, saleID)
	if err != nil {
		return nil, err
	}
	return s.view(ctx, cart)
}

func (s *saleService) ToggleSeat(ctx context.Context, saleID string, req *request.SeatRequest) (*response.SaleResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	cart, err := s.loadCart(ctx, saleID)
	if err != nil {
		return nil, err
	}

	// occupancy is always re-read, never cached on the cart
	occ, err := s.catalog.occupancy(ctx, cart.SessionID)
	if err != nil {
		return nil, err
	}

	seat := sale.Seat{Row: req.Row, Column: req.Column}
	selected, err := cart.ToggleSeat(seat, occ)
	if err != nil {
		s.log.Info("Seat toggle rejected",
			zap.String("sale_id", saleID),
			zap.String("seat", seat.String()),
			zap.Error(err))
		return nil, fmt.Errorf("seat %s: %w", seat, err)
	}

	if err := s.repo.Cart.Save(ctx, cart); err != nil {
		return nil, err
	}

	s.log.Debug("Seat toggled",
		zap.String("sale_id", saleID),
		zap.String("seat", seat.String()),
		zap.Bool("selected", selected))

	resp := response.SaleToResponse(cart, sale.StateOpen, occ)
	return &resp, nil
}

func (s *saleService) ChangeFareTier(ctx context.Context, saleID string, req *request.FareTierRequest) (*response.SaleResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	return s.mutate(ctx, saleID, func(cart *sale.Cart) error {
		seat := sale.Seat{Row: req.Row, Column: req.Column}
		if err := cart.ChangeFareTier(seat, sale.FareTier(req.Tier)); err != nil {
			return fmt.Errorf("seat %s: %w", seat, err)
		}
		return nil
	})
}

func (s *saleService) RemoveTicket(ctx context.Context, saleID string, req *request.SeatRequest) (*response.SaleResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	return s.mutate(ctx, saleID, func(cart *sale.Cart) error {
		seat := sale.Seat{Row: req.Row, Column: req.Column}
		if err := cart.RemoveTicketLine(seat); err != nil {
			return fmt.Errorf("seat %s: %w", seat, err)
		}
		return nil
	})
}

// AddSnack reads the snack's current stock before reserving, so the guard
// checks against the latest stored value.
func (s *saleService) AddSnack(ctx context.Context, saleID string, req *request.AddSnackRequest) (*response.SaleResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	snackID, err := uuid.Parse(req.SnackID)
	if err != nil {
		return nil, fmt.Errorf("invalid snack id: %w", err)
	}

	snack, err := s.repo.Snack.FindByID(ctx, snackID)
	if err != nil {
		return nil, fmt.Errorf("get snack: %w", err)
	}
	if snack == nil {
		return nil, fmt.Errorf("snack not found")
	}

	return s.mutate(ctx, saleID, func(cart *sale.Cart) error {
		return cart.AddSnack(toSnackItem(snack), req.Quantity)
	})
}

func (s *saleService) RemoveSnack(ctx context.Context, saleID string, index int) (*response.SaleResponse, error) {
	return s.mutate(ctx, saleID, func(cart *sale.Cart) error {
		return cart.RemoveSnackLine(index)
	})
}

func (s *saleService) SetPricing(ctx context.Context, saleID string, req *request.PricingRequest) (*response.SaleResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	return s.mutate(ctx, saleID, func(cart *sale.Cart) error {
		return cart.SetPricing(sale.NewPricingPolicy(*req.Full, *req.Half))
	})
}

// Checkout commits the cart as an order.
//
// A stock sync failure does not fail the call: the order stands, the
// response carries the failed lines and a reconciliation event is published
// for each of them.
func (s *saleService) Checkout(ctx context.Context, saleID string) (*response.CheckoutResponse, error) {
	cart, err := s.loadCart(ctx, saleID)
	if err != nil {
		return nil, err
	}

	processor := sale.NewProcessor(s.catalog, s.log).WithClock(s.now)
	order, err := processor.Checkout(ctx, cart)

	var syncErr *sale.StockSyncError
	if err != nil && !errors.As(err, &syncErr) {
		// cart in redis is untouched, the cashier can retry
		return nil, err
	}

	// a stored cart must never still hold lines of a committed order
	if saveErr := s.repo.Cart.Save(ctx, cart); saveErr != nil {
		s.log.Warn("Failed to save cleared cart, closing sale", zap.Error(saveErr), zap.String("sale_id", saleID))
		if delErr := s.repo.Cart.Delete(ctx, cart.ID); delErr != nil {
			s.log.Error("Failed to close sale after checkout",
				zap.Error(delErr),
				zap.String("sale_id", saleID),
				zap.String("order_id", order.ID.String()),
			)
		}
	}

	publish(ctx, s.publisher, s.log, broker.QueueOrderCommitted, newOrderCommittedEvent(order))

	occ := processor.Occupancy()
	if occ == nil {
		occ = sale.Occupancy{}
	}

	resp := &response.CheckoutResponse{
		State: processor.State(),
		Order: response.OrderToResponse(toOrderEntity(order)),
		Sale:  response.SaleToResponse(cart, sale.StateOpen, occ),
	}

	if syncErr != nil {
		now := s.now()
		for _, f := range syncErr.Failures {
			publish(ctx, s.publisher, s.log, broker.QueueStockReconciliation, StockReconciliationEvent{
				OrderID:       &order.ID,
				SnackID:       f.SnackID,
				Name:          f.Name,
				Quantity:      f.Quantity,
				ExpectedStock: f.NewStock,
				Reason:        ReasonStockSyncFailed,
				DetectedAt:    now,
			})
		}
		resp.StockSync = &response.StockSyncResponse{
			Message:  "order saved but snack stock was not fully updated, reconcile manually",
			Failures: syncErr.Failures,
		}
	}

	return resp, nil
}

func (s *saleService) CancelSale(ctx context.Context, saleID string) error {
	cart, err := s.loadCart(ctx, saleID)
	if err != nil {
		return err
	}

	if err := s.repo.Cart.Delete(ctx, cart.ID); err != nil {
		return fmt.Errorf("cancel sale: %w", err)
	}

	s.log.Info("Sale cancelled",
		zap.String("sale_id", saleID),
		zap.Int("tickets", len(cart.Tickets)),
		zap.Int("snack_lines", len(cart.Snacks)))
	return nil
}

// ==================== HELPER METHODS ====================

func (s *saleService) loadCart(ctx context.Context, saleID string) (*sale.Cart, error) {
	id, err := uuid.Parse(saleID)
	if err != nil {
		return nil, fmt.Errorf("invalid sale id: %w", err)
	}

	cart, err := s.repo.Cart.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load sale: %w", err)
	}
	if cart == nil {
		return nil, fmt.Errorf("sale not found")
	}
	return cart, nil
}

// mutate applies fn to the stored cart and saves it only when fn succeeds,
// so a rejected change leaves the stored cart as it was.
func (s *saleService) mutate(ctx context.Context, saleID string, fn func(cart *sale.Cart) error) (*response.SaleResponse, error) {
	cart, err := s.loadCart(ctx, saleID)
	if err != nil {
		return nil, err
	}

	if err := fn(cart); err != nil {
		return nil, err
	}

	if err := s.repo.Cart.Save(ctx, cart); err != nil {
		return nil, err
	}

	return s.view(ctx, cart)
}

func (s *saleService) view(ctx context.Context, cart *sale.Cart) (*response.SaleResponse, error) {
	occ, err := s.catalog.occupancy(ctx, cart.SessionID)
	if err != nil {
		return nil, err
	}

	resp := response.SaleToResponse(cart, sale.StateOpen, occ)
	return &resp, nil
}
