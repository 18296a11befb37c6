package wire

import (
	"cinema-pos/internal/adaptor"
	"cinema-pos/internal/data/repository"
	"cinema-pos/pkg/middleware"
	"cinema-pos/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireSnack(
	r chi.Router,
	snackHandler *adaptor.SnackHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	r.Get("/api/snacks", snackHandler.GetSnacks)
	r.Get("/api/snacks/{id}", snackHandler.GetSnackByID)

	// ==================== ADMIN ROUTES ====================
	// Stock is managed here, checkout decrements it on its own
	r.Route("/api/admin/snacks", func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Token, log))
		r.Use(middleware.Admin(repo.Operator, log))

		r.Post("/", snackHandler.CreateSnack)
		r.Put("/{id}", snackHandler.UpdateSnack)
		r.Delete("/{id}", snackHandler.DeleteSnack)
	})
}
