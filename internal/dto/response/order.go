package response

import (
	"time"

	"cinema-pos/internal/data/entity"
)

type OrderTicketResponse struct {
	Row       int    `json:"row"`
	Column    int    `json:"column"`
	Tier      string `json:"tier"`
	UnitPrice string `json:"unit_price"`
}

type OrderSnackResponse struct {
	SnackID   string `json:"snack_id"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unit_price"`
	Subtotal  string `json:"subtotal"`
}

type OrderResponse struct {
	ID        string                `json:"id"`
	Code      string                `json:"code"`
	SessionID string                `json:"session_id"`
	FullCount int                   `json:"full_count"`
	HalfCount int                   `json:"half_count"`
	Total     string                `json:"total"`
	Tickets   []OrderTicketResponse `json:"tickets" copier:"-"`
	Snacks    []OrderSnackResponse  `json:"snacks"`
	CreatedAt time.Time             `json:"created_at"`
}

func OrderToResponse(order *entity.Order) OrderResponse {
	var resp OrderResponse
	_ = copyInto(&resp, order)

	resp.Tickets = make([]OrderTicketResponse, len(order.Tickets))
	for i, t := range order.Tickets {
		resp.Tickets[i] = OrderTicketResponse{
			Row:       t.SeatRow,
			Column:    t.SeatColumn,
			Tier:      t.FareTier,
			UnitPrice: Money(t.UnitPrice),
		}
	}
	if resp.Snacks == nil {
		resp.Snacks = []OrderSnackResponse{}
	}

	return resp
}
