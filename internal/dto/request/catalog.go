package request

import (
	"time"

	"github.com/shopspring/decimal"
)

type MovieRequest struct {
	Title           string `json:"title" validate:"required,min=1,max=200"`
	Synopsis        string `json:"synopsis" validate:"required,min=10"`
	DurationMinutes int    `json:"duration_minutes" validate:"required,gt=0,max=999"`
	Rating          string `json:"rating" validate:"required,max=20"`
	Genre           string `json:"genre" validate:"required,max=50"`
	ScreeningStart  string `json:"screening_start" validate:"required,datetime=2006-01-02"`
	ScreeningEnd    string `json:"screening_end" validate:"required,datetime=2006-01-02"`
}

type MovieUpdateRequest struct {
	Title           *string `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	Synopsis        *string `json:"synopsis,omitempty" validate:"omitempty,min=10"`
	DurationMinutes *int    `json:"duration_minutes,omitempty" validate:"omitempty,gt=0,max=999"`
	Rating          *string `json:"rating,omitempty" validate:"omitempty,max=20"`
	Genre           *string `json:"genre,omitempty" validate:"omitempty,max=50"`
	ScreeningStart  *string `json:"screening_start,omitempty" validate:"omitempty,datetime=2006-01-02"`
	ScreeningEnd    *string `json:"screening_end,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

type RoomRequest struct {
	Number   int `json:"number" validate:"required,gt=0"`
	Capacity int `json:"capacity" validate:"required,gt=0,max=1000"`
}

type SnackRequest struct {
	Name        string          `json:"name" validate:"required,min=3,max=100"`
	Description string          `json:"description" validate:"required,min=5"`
	UnitPrice   decimal.Decimal `json:"unit_price" validate:"decimal_gt0,decimal_cents"`
	Stock       int             `json:"stock" validate:"gte=0"`
}

type SnackUpdateRequest struct {
	Name        *string          `json:"name,omitempty" validate:"omitempty,min=3,max=100"`
	Description *string          `json:"description,omitempty" validate:"omitempty,min=5"`
	UnitPrice   *decimal.Decimal `json:"unit_price,omitempty" validate:"omitempty,decimal_gt0,decimal_cents"`
	Stock       *int             `json:"stock,omitempty" validate:"omitempty,gte=0"`
}

type CreateSessionRequest struct {
	MovieID  string    `json:"movie_id" validate:"required,uuid"`
	RoomID   string    `json:"room_id" validate:"required,uuid"`
	StartsAt time.Time `json:"starts_at" validate:"required"`
}
