package sale

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TicketLine is one seat in a cart or order. UnitPrice is the price in
// effect when the line was written.
type TicketLine struct {
	SessionID uuid.UUID       `json:"session_id"`
	Seat      Seat            `json:"seat"`
	Tier      FareTier        `json:"tier"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

type SnackLine struct {
	SnackID   uuid.UUID       `json:"snack_id"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

func newSnackLine(item SnackItem, quantity int) SnackLine {
	line := SnackLine{
		SnackID:   item.ID,
		Name:      item.Name,
		Quantity:  quantity,
		UnitPrice: item.UnitPrice,
	}
	line.recompute()
	return line
}

func (l *SnackLine) recompute() {
	l.Subtotal = l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// SnackItem is the catalog view of a snack as read by the engine.
type SnackItem struct {
	ID          uuid.UUID
	Name        string
	Description string
	UnitPrice   decimal.Decimal
	Stock       int
}

// Order is a committed sale. ID and Code are assigned by the store.
type Order struct {
	ID        uuid.UUID       `json:"id"`
	Code      string          `json:"code"`
	SessionID uuid.UUID       `json:"session_id"`
	Tickets   []TicketLine    `json:"tickets"`
	Snacks    []SnackLine     `json:"snacks"`
	FullCount int             `json:"full_count"`
	HalfCount int             `json:"half_count"`
	Total     decimal.Decimal `json:"total"`
	CreatedAt time.Time       `json:"created_at"`
}
