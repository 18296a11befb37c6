package usecase

import (
	"context"
	"time"

	"cinema-pos/internal/sale"
	"cinema-pos/pkg/broker"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// OrderCommittedEvent is published once an order is stored.
type OrderCommittedEvent struct {
	OrderID   uuid.UUID `json:"order_id"`
	Code      string    `json:"code"`
	SessionID uuid.UUID `json:"session_id"`
	Seats     []string  `json:"seats"`
	FullCount int       `json:"full_count"`
	HalfCount int       `json:"half_count"`
	Total     string    `json:"total"`
	CreatedAt time.Time `json:"created_at"`
}

// StockReconciliationEvent flags a snack whose stored stock needs a manual fix.
type StockReconciliationEvent struct {
	OrderID       *uuid.UUID `json:"order_id,omitempty"`
	SnackID       uuid.UUID  `json:"snack_id"`
	Name          string     `json:"name"`
	Quantity      int        `json:"quantity,omitempty"`
	ExpectedStock int        `json:"expected_stock"`
	Reason        string     `json:"reason"`
	DetectedAt    time.Time  `json:"detected_at"`
}

const (
	ReasonStockSyncFailed = "stock_sync_failed"
	ReasonNegativeStock   = "negative_stock"
)

func newOrderCommittedEvent(order *sale.Order) OrderCommittedEvent {
	seats := make([]string, len(order.Tickets))
	for i, t := range order.Tickets {
		seats[i] = t.Seat.String()
	}

	return OrderCommittedEvent{
		OrderID:   order.ID,
		Code:      order.Code,
		SessionID: order.SessionID,
		Seats:     seats,
		FullCount: order.FullCount,
		HalfCount: order.HalfCount,
		Total:     order.Total.StringFixed(2),
		CreatedAt: order.CreatedAt,
	}
}

// publish never fails the caller; the order is already stored.
func publish(ctx context.Context, publisher broker.Publisher, log *zap.Logger, queue string, event any) {
	if err := publisher.Publish(ctx, queue, event); err != nil {
		log.Warn("Failed to publish event", zap.Error(err), zap.String("queue", queue))
	}
}
