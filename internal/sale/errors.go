package sale

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrSeatUnavailable   = errors.New("seat unavailable")
	ErrSeatOutOfRange    = errors.New("invalid seat for this room")
	ErrTicketNotFound    = errors.New("ticket line not found")
	ErrSnackLineNotFound = errors.New("snack line not found")
	ErrInvalidQuantity   = errors.New("invalid quantity: must be greater than zero")
	ErrInvalidFareTier   = errors.New("invalid fare tier")
	ErrNegativePrice     = errors.New("invalid price: must not be negative")
	ErrPricePrecision    = errors.New("invalid price: at most two decimal places")
	ErrEmptyCart         = errors.New("cart is empty")
)

// InsufficientStockError rejects a snack request that would reserve more
// than the stock snapshot holds.
type InsufficientStockError struct {
	SnackID   uuid.UUID `json:"snack_id"`
	Name      string    `json:"name"`
	Stock     int       `json:"stock"`
	Reserved  int       `json:"reserved"`
	Requested int       `json:"requested"`
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s: stock %d, already reserved %d, requested %d",
		e.Name, e.Stock, e.Reserved, e.Requested)
}

// OrderPersistError means the order was not created. The cart is untouched.
type OrderPersistError struct {
	Err error
}

func (e *OrderPersistError) Error() string {
	return fmt.Sprintf("persist order: %v", e.Err)
}

func (e *OrderPersistError) Unwrap() error {
	return e.Err
}

// StockFailure is one snack line whose decrement was not applied.
type StockFailure struct {
	SnackID  uuid.UUID `json:"snack_id"`
	Name     string    `json:"name"`
	Quantity int       `json:"quantity"`
	NewStock int       `json:"new_stock"`
	Err      error     `json:"-"`
}

// StockSyncError means the order exists but some stock decrements failed.
// Nothing is rolled back; the failures need manual reconciliation.
type StockSyncError struct {
	OrderID  uuid.UUID
	Failures []StockFailure
	Err      error
}

func (e *StockSyncError) Error() string {
	names := make([]string, len(e.Failures))
	for i, f := range e.Failures {
		names[i] = f.Name
	}
	return fmt.Sprintf("order %s saved but stock sync failed for %s: %v",
		e.OrderID, strings.Join(names, ", "), e.Err)
}

func (e *StockSyncError) Unwrap() error {
	return e.Err
}
