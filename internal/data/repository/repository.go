package repository

import (
	"time"

	"cinema-pos/pkg/database"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Repository struct {
	Operator OperatorRepository
	Token    TokenRepository
	Movie    MovieRepository
	Room     RoomRepository
	Snack    SnackRepository
	Session  SessionRepository
	Order    OrderRepository
	Cart     CartRepository
}

func NewRepository(db database.PgxIface, rdb redis.UniversalClient, cartTTL time.Duration, log *zap.Logger) *Repository {
	return &Repository{
		Operator: NewOperatorRepository(db, log),
		Token:    NewTokenRepository(db, log),
		Movie:    NewMovieRepository(db, log),
		Room:     NewRoomRepository(db, log),
		Snack:    NewSnackRepository(db, log),
		Session:  NewSessionRepository(db, log),
		Order:    NewOrderRepository(db, log),
		Cart:     NewCartRepository(rdb, cartTTL, log),
	}
}
