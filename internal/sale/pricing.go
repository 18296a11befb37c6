package sale

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// FareTier is the ticket pricing category.
type FareTier string

const (
	FareFull FareTier = "FULL"
	FareHalf FareTier = "HALF"
)

func (t FareTier) Valid() bool {
	return t == FareFull || t == FareHalf
}

// PricingPolicy holds the unit price of each fare tier for one sale.
// Lines copy the price when they are written; changing the policy later
// leaves them alone.
type PricingPolicy struct {
	Full decimal.Decimal `json:"full"`
	Half decimal.Decimal `json:"half"`
}

func NewPricingPolicy(full, half decimal.Decimal) PricingPolicy {
	return PricingPolicy{Full: full, Half: half}
}

// PriceFor resolves the unit price of tier.
func (p PricingPolicy) PriceFor(tier FareTier) (decimal.Decimal, error) {
	switch tier {
	case FareFull:
		return p.Full, nil
	case FareHalf:
		return p.Half, nil
	default:
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidFareTier, tier)
	}
}

// Validate rejects negative prices and prices with more than two decimal
// places, the precision order lines are stored with.
func (p PricingPolicy) Validate() error {
	for _, price := range []decimal.Decimal{p.Full, p.Half} {
		if price.IsNegative() {
			return ErrNegativePrice
		}
		if !price.Equal(price.Truncate(2)) {
			return ErrPricePrecision
		}
	}
	return nil
}
