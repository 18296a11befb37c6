package sale

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// State is the checkout protocol state.
type State string

const (
	StateOpen       State = "OPEN"
	StateValidating State = "VALIDATING"
	StateCommitting State = "COMMITTING"
	StateDone       State = "DONE"
	StateFailed     State = "FAILED"
)

// Catalog is the store the processor reads from and commits to.
type Catalog interface {
	ListOrders(ctx context.Context) ([]Order, error)
	ListSnackItems(ctx context.Context) ([]SnackItem, error)
	// CreateOrder persists order and returns it with ID and Code assigned.
	CreateOrder(ctx context.Context, order *Order) (*Order, error)
	// PatchSnackStock overwrites the stock of a snack. There is no version check.
	PatchSnackStock(ctx context.Context, snackID uuid.UUID, newStock int) error
}

// Processor runs one checkout of a cart against a Catalog.
type Processor struct {
	catalog   Catalog
	log       *zap.Logger
	now       func() time.Time
	state     State
	occupancy Occupancy
}

func NewProcessor(catalog Catalog, log *zap.Logger) *Processor {
	return &Processor{
		catalog: catalog,
		log:     log.With(zap.String("component", "checkout")),
		now:     time.Now,
		state:   StateOpen,
	}
}

// WithClock overrides the order timestamp source.
func (p *Processor) WithClock(now func() time.Time) *Processor {
	p.now = now
	return p
}

func (p *Processor) State() State {
	return p.state
}

// Occupancy is the session occupancy read after a successful checkout,
// nil when the refresh failed or no checkout completed.
func (p *Processor) Occupancy() Occupancy {
	return p.occupancy
}

// Checkout validates cart, persists the order, then decrements snack stock.
//
// Returned errors:
//   - ErrEmptyCart: nothing selected, no store call made, state FAILED.
//   - *OrderPersistError: order not saved, cart intact, state FAILED.
//   - *StockSyncError: order saved and returned alongside the error, cart
//     cleared, state DONE.
func (p *Processor) Checkout(ctx context.Context, cart *Cart) (*Order, error) {
	p.state = StateValidating
	if cart.IsEmpty() {
		p.state = StateFailed
		return nil, ErrEmptyCart
	}

	p.state = StateCommitting
	draft := cart.snapshotOrder(p.now())

	order, err := p.catalog.CreateOrder(ctx, draft)
	if err != nil {
		p.state = StateFailed
		p.log.Error("Failed to persist order",
			zap.Error(err),
			zap.String("cart_id", cart.ID.String()),
			zap.String("session_id", cart.SessionID.String()))
		return nil, &OrderPersistError{Err: err}
	}

	syncErr := p.decrementStock(ctx, cart, order)

	p.state = StateDone
	cart.Clear()
	p.refresh(ctx, cart)

	p.log.Info("Checkout completed",
		zap.String("order_id", order.ID.String()),
		zap.String("order_code", order.Code),
		zap.Int("tickets", len(order.Tickets)),
		zap.Int("snack_lines", len(order.Snacks)),
		zap.String("total", order.Total.StringFixed(2)),
		zap.Bool("stock_synced", syncErr == nil))

	if syncErr != nil {
		return order, syncErr
	}
	return order, nil
}

// decrementStock issues one patch per snack line concurrently and waits
// for all of them. Each patch writes snapshot stock minus line quantity.
func (p *Processor) decrementStock(ctx context.Context, cart *Cart, order *Order) error {
	if len(order.Snacks) == 0 {
		return nil
	}

	var (
		g        errgroup.Group
		mu       sync.Mutex
		failures []StockFailure
		combined error
	)

	for _, line := range order.Snacks {
		newStock := cart.Stock[line.SnackID] - line.Quantity
		g.Go(func() error {
			if err := p.catalog.PatchSnackStock(ctx, line.SnackID, newStock); err != nil {
				mu.Lock()
				failures = append(failures, StockFailure{
					SnackID:  line.SnackID,
					Name:     line.Name,
					Quantity: line.Quantity,
					NewStock: newStock,
					Err:      err,
				})
				combined = multierr.Append(combined, err)
				mu.Unlock()
			}
			// never short-circuit the group, every line is attempted
			return nil
		})
	}
	_ = g.Wait()

	if len(failures) == 0 {
		return nil
	}

	p.log.Warn("Stock sync failed after order was saved",
		zap.String("order_id", order.ID.String()),
		zap.Int("failed_lines", len(failures)),
		zap.Error(combined))

	return &StockSyncError{
		OrderID:  order.ID,
		Failures: failures,
		Err:      combined,
	}
}

// refresh re-reads snack stock and session occupancy so the next sale
// starts from the store's state. Failures are logged only.
func (p *Processor) refresh(ctx context.Context, cart *Cart) {
	items, err := p.catalog.ListSnackItems(ctx)
	if err != nil {
		p.log.Warn("Failed to refresh snack stock", zap.Error(err))
	} else {
		cart.RefreshStock(items)
	}

	orders, err := p.catalog.ListOrders(ctx)
	if err != nil {
		p.log.Warn("Failed to refresh occupancy", zap.Error(err))
		return
	}
	p.occupancy = OccupiedSeats(cart.SessionID, orders)
}
