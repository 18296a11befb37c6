package wire

import (
	"cinema-pos/internal/adaptor"
	"cinema-pos/internal/data/repository"
	"cinema-pos/pkg/middleware"
	"cinema-pos/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireOrder(
	r chi.Router,
	orderHandler *adaptor.OrderHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PROTECTED ROUTES (operator) ====================
	r.With(middleware.AuthSession(repo.Token, log)).Route("/api/orders", func(r chi.Router) {
		r.Get("/", orderHandler.GetOrders)                 // GET /api/orders?page=1&per_page=10&session_id=
		r.Get("/{id}", orderHandler.GetOrderByID)          // GET /api/orders/{id}
		r.Get("/{id}/qrcode", orderHandler.GetOrderQRCode) // GET /api/orders/{id}/qrcode
	})
}
