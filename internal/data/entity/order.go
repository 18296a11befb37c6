package entity

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Order struct {
	BaseSimple
	Code      string          `db:"code"`
	SessionID uuid.UUID       `db:"session_id"`
	FullCount int             `db:"full_count"`
	HalfCount int             `db:"half_count"`
	Total     decimal.Decimal `db:"total"`

	Tickets []OrderTicket `db:"-"`
	Snacks  []OrderSnack  `db:"-"`
}

type OrderTicket struct {
	ID         uuid.UUID       `db:"id"`
	OrderID    uuid.UUID       `db:"order_id"`
	SessionID  uuid.UUID       `db:"session_id"`
	SeatRow    int             `db:"seat_row"`
	SeatColumn int             `db:"seat_column"`
	FareTier   string          `db:"fare_tier"`
	UnitPrice  decimal.Decimal `db:"unit_price"`
}

type OrderSnack struct {
	ID        uuid.UUID       `db:"id"`
	OrderID   uuid.UUID       `db:"order_id"`
	SnackID   uuid.UUID       `db:"snack_id"`
	Name      string          `db:"name"`
	Quantity  int             `db:"quantity"`
	UnitPrice decimal.Decimal `db:"unit_price"`
	Subtotal  decimal.Decimal `db:"subtotal"`
}
