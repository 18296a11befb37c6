package response

import (
	"time"

	"cinema-pos/internal/sale"
)

type TicketLineResponse struct {
	Row       int    `json:"row"`
	Column    int    `json:"column"`
	Tier      string `json:"tier"`
	UnitPrice string `json:"unit_price"`
}

type SnackLineResponse struct {
	Index     int    `json:"index"`
	SnackID   string `json:"snack_id"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unit_price"`
	Subtotal  string `json:"subtotal"`
}

type TotalsResponse struct {
	Tickets string `json:"tickets"`
	Snacks  string `json:"snacks"`
	Grand   string `json:"grand"`
}

type PricingResponse struct {
	Full string `json:"full"`
	Half string `json:"half"`
}

// SaleResponse is the cashier's view of an open cart.
type SaleResponse struct {
	ID            string               `json:"id"`
	SessionID     string               `json:"session_id"`
	State         sale.State           `json:"state"`
	Pricing       PricingResponse      `json:"pricing"`
	Tickets       []TicketLineResponse `json:"tickets"`
	Snacks        []SnackLineResponse  `json:"snacks"`
	FullCount     int                  `json:"full_count"`
	HalfCount     int                  `json:"half_count"`
	Totals        TotalsResponse       `json:"totals"`
	Capacity      int                  `json:"capacity"`
	OccupiedSeats []sale.Seat          `json:"occupied_seats"`
	Remaining     int                  `json:"remaining_seats"`
	OpenedAt      time.Time            `json:"opened_at"`
}

type StockSyncResponse struct {
	Message  string              `json:"message"`
	Failures []sale.StockFailure `json:"failures"`
}

type CheckoutResponse struct {
	State     sale.State         `json:"state"`
	Order     OrderResponse      `json:"order"`
	Sale      SaleResponse       `json:"sale"`
	StockSync *StockSyncResponse `json:"stock_sync,omitempty"`
}

func TotalsToResponse(t sale.Totals) TotalsResponse {
	return TotalsResponse{
		Tickets: Money(t.Tickets),
		Snacks:  Money(t.Snacks),
		Grand:   Money(t.Grand),
	}
}

// SaleToResponse renders cart together with the session occupancy it was
// checked against.
func SaleToResponse(cart *sale.Cart, state sale.State, occ sale.Occupancy) SaleResponse {
	full, half := cart.FareCounts()

	tickets := make([]TicketLineResponse, len(cart.Tickets))
	for i, t := range cart.Tickets {
		tickets[i] = TicketLineResponse{
			Row:       t.Seat.Row,
			Column:    t.Seat.Column,
			Tier:      string(t.Tier),
			UnitPrice: Money(t.UnitPrice),
		}
	}

	snacks := make([]SnackLineResponse, len(cart.Snacks))
	for i, s := range cart.Snacks {
		snacks[i] = SnackLineResponse{
			Index:     i,
			SnackID:   s.SnackID.String(),
			Name:      s.Name,
			Quantity:  s.Quantity,
			UnitPrice: Money(s.UnitPrice),
			Subtotal:  Money(s.Subtotal),
		}
	}

	return SaleResponse{
		ID:        cart.ID.String(),
		SessionID: cart.SessionID.String(),
		State:     state,
		Pricing: PricingResponse{
			Full: Money(cart.Pricing.Full),
			Half: Money(cart.Pricing.Half),
		},
		Tickets:       tickets,
		Snacks:        snacks,
		FullCount:     full,
		HalfCount:     half,
		Totals:        TotalsToResponse(cart.Totals()),
		Capacity:      cart.Capacity,
		OccupiedSeats: occ.Seats(),
		Remaining:     sale.RemainingCapacity(cart.Capacity, occ),
		OpenedAt:      cart.OpenedAt,
	}
}
