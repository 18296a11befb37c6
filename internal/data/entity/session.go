package entity

import (
	"time"

	"github.com/google/uuid"
)

// Session is a scheduled screening of a movie in a room.
type Session struct {
	BaseSimple
	MovieID  uuid.UUID `db:"movie_id"`
	RoomID   uuid.UUID `db:"room_id"`
	StartsAt time.Time `db:"starts_at"`

	// filled only when expanded
	Movie *Movie `db:"-"`
	Room  *Room  `db:"-"`
}
