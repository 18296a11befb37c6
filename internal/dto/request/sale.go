package request

import "github.com/shopspring/decimal"

type OpenSaleRequest struct {
	SessionID string `json:"session_id" validate:"required,uuid"`
}

type SeatRequest struct {
	Row    int `json:"row" validate:"required,gt=0"`
	Column int `json:"column" validate:"required,gt=0"`
}

type FareTierRequest struct {
	Row    int    `json:"row" validate:"required,gt=0"`
	Column int    `json:"column" validate:"required,gt=0"`
	Tier   string `json:"tier" validate:"required,oneof=FULL HALF"`
}

type AddSnackRequest struct {
	SnackID  string `json:"snack_id" validate:"required,uuid"`
	Quantity int    `json:"quantity" validate:"required,gt=0"`
}

type PricingRequest struct {
	Full *decimal.Decimal `json:"full" validate:"required,decimal_gte0,decimal_cents"`
	Half *decimal.Decimal `json:"half" validate:"required,decimal_gte0,decimal_cents"`
}
