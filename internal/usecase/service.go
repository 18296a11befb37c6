package usecase

import (
	"cinema-pos/internal/data/repository"
	"cinema-pos/pkg/broker"
	"cinema-pos/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth        AuthService
	Movie       MovieService
	Room        RoomService
	Snack       SnackService
	Session     SessionService
	Sale        SaleService
	Order       OrderService
	Maintenance MaintenanceService
}

func NewService(repo *repository.Repository, publisher broker.Publisher, config *utils.Config, log *zap.Logger) *Service {
	return &Service{
		Auth:        NewAuthService(repo, config, log),
		Movie:       NewMovieService(repo, log),
		Room:        NewRoomService(repo, log),
		Snack:       NewSnackService(repo, log),
		Session:     NewSessionService(repo, config.App.Location, log),
		Sale:        NewSaleService(repo, publisher, config, log),
		Order:       NewOrderService(repo, log),
		Maintenance: NewMaintenanceService(repo, publisher, log),
	}
}
