package usecase

import (
	"context"
	"fmt"

	"cinema-pos/internal/data/entity"
	"cinema-pos/internal/data/repository"
	"cinema-pos/internal/dto/request"
	"cinema-pos/internal/dto/response"
	"cinema-pos/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const qrCodeSize = 256

type OrderService interface {
	GetOrders(ctx context.Context, req *request.OrderListRequest) (*response.PaginatedResponse[response.OrderResponse], error)
	GetOrderByID(ctx context.Context, orderID string) (*response.OrderResponse, error)
	// GetOrderQRCode renders the order code as a PNG for the printed ticket.
	GetOrderQRCode(ctx context.Context, orderID string) ([]byte, error)
}

type orderService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewOrderService(repo *repository.Repository, log *zap.Logger) OrderService {
	return &orderService{
		repo: repo,
		log:  log.With(zap.String("service", "order")),
	}
}

func (s *orderService) GetOrders(ctx context.Context, req *request.OrderListRequest) (*response.PaginatedResponse[response.OrderResponse], error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	var sessionID *uuid.UUID
	if req.SessionID != "" {
		id, err := uuid.Parse(req.SessionID)
		if err != nil {
			return nil, fmt.Errorf("invalid session id: %w", err)
		}
		sessionID = &id
	}

	limit := req.Limit()
	orders, err := s.repo.Order.FindPage(ctx, sessionID, limit, req.Offset())
	if err != nil {
		return nil, fmt.Errorf("get orders: %w", err)
	}

	total, err := s.repo.Order.Count(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("count orders: %w", err)
	}

	data := make([]response.OrderResponse, len(orders))
	for i, order := range orders {
		data[i] = response.OrderToResponse(order)
	}

	s.log.Debug("Orders retrieved",
		zap.Int("count", len(orders)),
		zap.Int64("total", total),
		zap.Int("page", req.Page))

	return response.NewPaginatedResponse(data, req.Page, limit, total), nil
}

func (s *orderService) GetOrderByID(ctx context.Context, orderID string) (*response.OrderResponse, error) {
	order, err := s.findOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	resp := response.OrderToResponse(order)
	return &resp, nil
}

func (s *orderService) GetOrderQRCode(ctx context.Context, orderID string) ([]byte, error) {
	order, err := s.findOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	png, err := utils.GenerateQRCode(order.Code, qrCodeSize)
	if err != nil {
		s.log.Error("Failed to render QR code", zap.Error(err), zap.String("order_code", order.Code))
		return nil, fmt.Errorf("render qr code: %w", err)
	}

	return png, nil
}

func (s *orderService) findOrder(ctx context.Context, orderID string) (*entity.Order, error) {
	id, err := uuid.Parse(orderID)
	if err != nil {
		return nil, fmt.Errorf("invalid order id: %w", err)
	}

	order, err := s.repo.Order.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}
	if order == nil {
		return nil, fmt.Errorf("order not found")
	}
	return order, nil
}
