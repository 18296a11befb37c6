package sale

import "github.com/google/uuid"

// StockGuard checks snack requests against the cart's stock snapshot.
type StockGuard struct {
	cart *Cart
}

// ReservedInCart sums the quantity of every cart line for snackID.
func (g StockGuard) ReservedInCart(snackID uuid.UUID) int {
	reserved := 0
	for _, line := range g.cart.Snacks {
		if line.SnackID == snackID {
			reserved += line.Quantity
		}
	}
	return reserved
}

// AvailableFor is the snapshot stock minus what the cart already holds.
func (g StockGuard) AvailableFor(snackID uuid.UUID) int {
	return g.cart.Stock[snackID] - g.ReservedInCart(snackID)
}

// Check fails with *InsufficientStockError when reserving quantity more
// units of item would exceed its stock.
func (g StockGuard) Check(item SnackItem, quantity int) error {
	reserved := g.ReservedInCart(item.ID)
	if reserved+quantity > item.Stock {
		return &InsufficientStockError{
			SnackID:   item.ID,
			Name:      item.Name,
			Stock:     item.Stock,
			Reserved:  reserved,
			Requested: quantity,
		}
	}
	return nil
}
