package adaptor

import (
	"cinema-pos/internal/usecase"

	"go.uber.org/zap"
)

type Handler struct {
	Auth    *AuthHandler
	Movie   *MovieHandler
	Room    *RoomHandler
	Snack   *SnackHandler
	Session *SessionHandler
	Sale    *SaleHandler
	Order   *OrderHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Auth:    NewAuthHandler(service.Auth, log),
		Movie:   NewMovieHandler(service.Movie, log),
		Room:    NewRoomHandler(service.Room, log),
		Snack:   NewSnackHandler(service.Snack, log),
		Session: NewSessionHandler(service.Session, log),
		Sale:    NewSaleHandler(service.Sale, log),
		Order:   NewOrderHandler(service.Order, log),
	}
}
