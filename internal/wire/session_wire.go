package wire

import (
	"cinema-pos/internal/adaptor"
	"cinema-pos/internal/data/repository"
	"cinema-pos/pkg/middleware"
	"cinema-pos/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireSession(
	r chi.Router,
	sessionHandler *adaptor.SessionHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	// GET /api/sessions?expand=movie,room - List sessions
	r.Get("/api/sessions", sessionHandler.GetSessions)

	// GET /api/sessions/{id} - Session with movie and room
	r.Get("/api/sessions/{id}", sessionHandler.GetSessionByID)

	// GET /api/sessions/{id}/seats - Seat map with occupied flags
	r.Get("/api/sessions/{id}/seats", sessionHandler.GetSeatMap)

	// ==================== ADMIN ROUTES ====================
	r.Route("/api/admin/sessions", func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Token, log))
		r.Use(middleware.Admin(repo.Operator, log))

		r.Post("/", sessionHandler.CreateSession)
		r.Delete("/{id}", sessionHandler.DeleteSession)
	})
}
