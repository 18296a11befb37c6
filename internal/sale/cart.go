package sale

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Cart is the in-progress selection of one sale, scoped to a single
// session. It is a plain value with no locking; callers serialize access.
type Cart struct {
	ID        uuid.UUID         `json:"id"`
	SessionID uuid.UUID         `json:"session_id"`
	Capacity  int               `json:"capacity"`
	Pricing   PricingPolicy     `json:"pricing"`
	Tickets   []TicketLine      `json:"tickets"`
	Snacks    []SnackLine       `json:"snacks"`
	Stock     map[uuid.UUID]int `json:"stock"`
	OpenedAt  time.Time         `json:"opened_at"`
}

// Totals is always computed from the current lines.
type Totals struct {
	Tickets decimal.Decimal `json:"tickets"`
	Snacks  decimal.Decimal `json:"snacks"`
	Grand   decimal.Decimal `json:"grand"`
}

// NewCart opens an empty cart for a session held in a room of the given
// capacity, priced with pricing.
func NewCart(sessionID uuid.UUID, capacity int, pricing PricingPolicy, now time.Time) *Cart {
	return &Cart{
		ID:        uuid.New(),
		SessionID: sessionID,
		Capacity:  capacity,
		Pricing:   pricing,
		Tickets:   []TicketLine{},
		Snacks:    []SnackLine{},
		Stock:     make(map[uuid.UUID]int),
		OpenedAt:  now,
	}
}

func (c *Cart) Guard() StockGuard {
	return StockGuard{cart: c}
}

func (c *Cart) ticketIndex(seat Seat) int {
	for i, t := range c.Tickets {
		if t.Seat == seat {
			return i
		}
	}
	return -1
}

func (c *Cart) HasSeat(seat Seat) bool {
	return c.ticketIndex(seat) >= 0
}

// ToggleSeat removes seat when it is already in the cart, otherwise adds a
// FULL ticket at the current full price. Occupied seats are refused with
// ErrSeatUnavailable and the cart is left unchanged. The returned bool
// reports whether the seat is selected afterwards.
func (c *Cart) ToggleSeat(seat Seat, occupied Occupancy) (bool, error) {
	if i := c.ticketIndex(seat); i >= 0 {
		c.Tickets = append(c.Tickets[:i], c.Tickets[i+1:]...)
		return false, nil
	}

	if !seat.Within(c.Capacity) {
		return false, ErrSeatOutOfRange
	}
	if occupied.Has(seat) {
		return false, ErrSeatUnavailable
	}

	c.Tickets = append(c.Tickets, TicketLine{
		SessionID: c.SessionID,
		Seat:      seat,
		Tier:      FareFull,
		UnitPrice: c.Pricing.Full,
	})
	return true, nil
}

// ChangeFareTier rewrites the tier of the ticket on seat and reprices it
// at the policy's current price for tier.
func (c *Cart) ChangeFareTier(seat Seat, tier FareTier) error {
	price, err := c.Pricing.PriceFor(tier)
	if err != nil {
		return err
	}

	i := c.ticketIndex(seat)
	if i < 0 {
		return ErrTicketNotFound
	}

	c.Tickets[i].Tier = tier
	c.Tickets[i].UnitPrice = price
	return nil
}

// RemoveTicketLine drops the ticket on seat.
func (c *Cart) RemoveTicketLine(seat Seat) error {
	i := c.ticketIndex(seat)
	if i < 0 {
		return ErrTicketNotFound
	}
	c.Tickets = append(c.Tickets[:i], c.Tickets[i+1:]...)
	return nil
}

// AddSnack reserves quantity units of item. item carries the latest stock
// read from the catalog; it replaces the cart's snapshot for that snack.
// Existing lines for the same snack are merged.
func (c *Cart) AddSnack(item SnackItem, quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	if err := c.Guard().Check(item, quantity); err != nil {
		return err
	}

	if c.Stock == nil {
		c.Stock = make(map[uuid.UUID]int)
	}
	c.Stock[item.ID] = item.Stock

	for i := range c.Snacks {
		if c.Snacks[i].SnackID == item.ID {
			c.Snacks[i].Quantity += quantity
			c.Snacks[i].recompute()
			return nil
		}
	}

	c.Snacks = append(c.Snacks, newSnackLine(item, quantity))
	return nil
}

// RemoveSnackLine drops the snack line at index.
func (c *Cart) RemoveSnackLine(index int) error {
	if index < 0 || index >= len(c.Snacks) {
		return ErrSnackLineNotFound
	}
	c.Snacks = append(c.Snacks[:index], c.Snacks[index+1:]...)
	return nil
}

// SetPricing replaces the policy for lines written from now on.
func (c *Cart) SetPricing(p PricingPolicy) error {
	if err := p.Validate(); err != nil {
		return err
	}
	c.Pricing = p
	return nil
}

// RefreshStock replaces the stock snapshot with the given catalog items.
func (c *Cart) RefreshStock(items []SnackItem) {
	stock := make(map[uuid.UUID]int, len(items))
	for _, item := range items {
		stock[item.ID] = item.Stock
	}
	c.Stock = stock
}

func (c *Cart) Totals() Totals {
	tickets := decimal.Zero
	for _, t := range c.Tickets {
		tickets = tickets.Add(t.UnitPrice)
	}

	snacks := decimal.Zero
	for _, s := range c.Snacks {
		snacks = snacks.Add(s.Subtotal)
	}

	return Totals{
		Tickets: tickets,
		Snacks:  snacks,
		Grand:   tickets.Add(snacks),
	}
}

// FareCounts returns the number of FULL and HALF tickets.
func (c *Cart) FareCounts() (full, half int) {
	for _, t := range c.Tickets {
		switch t.Tier {
		case FareFull:
			full++
		case FareHalf:
			half++
		}
	}
	return full, half
}

func (c *Cart) IsEmpty() bool {
	return len(c.Tickets) == 0 && len(c.Snacks) == 0
}

// Clear empties the lines. Pricing and the stock snapshot are kept.
func (c *Cart) Clear() {
	c.Tickets = []TicketLine{}
	c.Snacks = []SnackLine{}
}

// snapshotOrder freezes the current lines into an unsaved order.
func (c *Cart) snapshotOrder(now time.Time) *Order {
	full, half := c.FareCounts()

	tickets := make([]TicketLine, len(c.Tickets))
	copy(tickets, c.Tickets)
	snacks := make([]SnackLine, len(c.Snacks))
	copy(snacks, c.Snacks)

	return &Order{
		SessionID: c.SessionID,
		Tickets:   tickets,
		Snacks:    snacks,
		FullCount: full,
		HalfCount: half,
		Total:     c.Totals().Grand,
		CreatedAt: now,
	}
}
