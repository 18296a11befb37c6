package wire

import (
	"cinema-pos/internal/adaptor"
	"cinema-pos/internal/data/repository"
	"cinema-pos/pkg/middleware"
	"cinema-pos/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireSale(
	r chi.Router,
	saleHandler *adaptor.SaleHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PROTECTED ROUTES (operator) ====================
	r.Route("/api/sales", func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Token, log))

		// POST /api/sales - Open a sale for a session
		r.Post("/", saleHandler.OpenSale)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", saleHandler.GetSale)
			r.Delete("/", saleHandler.CancelSale)

			// Ticket lines, one per seat
			r.Post("/seats", saleHandler.ToggleSeat)
			r.Patch("/tickets", saleHandler.ChangeFareTier)
			r.Delete("/tickets", saleHandler.RemoveTicket) // ?row=&column=

			// Snack lines, addressed by position
			r.Post("/snacks", saleHandler.AddSnack)
			r.Delete("/snacks/{index}", saleHandler.RemoveSnack)

			r.Put("/pricing", saleHandler.SetPricing)
			r.Post("/checkout", saleHandler.Checkout)
		})
	})
}
