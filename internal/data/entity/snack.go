package entity

import "github.com/shopspring/decimal"

type SnackItem struct {
	Base
	Name        string          `db:"name"`
	Description string          `db:"description"`
	UnitPrice   decimal.Decimal `db:"unit_price"`
	Stock       int             `db:"stock"`
}
