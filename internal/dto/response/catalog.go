package response

import (
	"time"

	"cinema-pos/internal/data/entity"
)

type MovieResponse struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Synopsis        string    `json:"synopsis"`
	DurationMinutes int       `json:"duration_minutes"`
	Rating          string    `json:"rating"`
	Genre           string    `json:"genre"`
	ScreeningStart  string    `json:"screening_start" copier:"-"`
	ScreeningEnd    string    `json:"screening_end" copier:"-"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type RoomResponse struct {
	ID        string    `json:"id"`
	Number    int       `json:"number"`
	Capacity  int       `json:"capacity"`
	CreatedAt time.Time `json:"created_at"`
}

type SnackResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	UnitPrice   string    `json:"unit_price"`
	Stock       int       `json:"stock"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type SessionResponse struct {
	ID       string         `json:"id"`
	MovieID  string         `json:"movie_id"`
	RoomID   string         `json:"room_id"`
	StartsAt time.Time      `json:"starts_at"`
	Movie    *MovieResponse `json:"movie,omitempty" copier:"-"`
	Room     *RoomResponse  `json:"room,omitempty" copier:"-"`
}

type SeatStatus struct {
	Row      int  `json:"row"`
	Column   int  `json:"column"`
	Occupied bool `json:"occupied"`
}

// SeatMapResponse lays out a session's room row by row.
type SeatMapResponse struct {
	SessionID string         `json:"session_id"`
	Capacity  int            `json:"capacity"`
	Occupied  int            `json:"occupied"`
	Remaining int            `json:"remaining"`
	Rows      [][]SeatStatus `json:"rows"`
}

func MovieToResponse(movie *entity.Movie) MovieResponse {
	var resp MovieResponse
	_ = copyInto(&resp, movie)
	resp.ScreeningStart = movie.ScreeningStart.Format(dateLayout)
	resp.ScreeningEnd = movie.ScreeningEnd.Format(dateLayout)
	return resp
}

func RoomToResponse(room *entity.Room) RoomResponse {
	var resp RoomResponse
	_ = copyInto(&resp, room)
	return resp
}

func SnackToResponse(snack *entity.SnackItem) SnackResponse {
	var resp SnackResponse
	_ = copyInto(&resp, snack)
	return resp
}

func SessionToResponse(session *entity.Session) SessionResponse {
	var resp SessionResponse
	_ = copyInto(&resp, session)

	if session.Movie != nil {
		movie := MovieToResponse(session.Movie)
		resp.Movie = &movie
	}
	if session.Room != nil {
		room := RoomToResponse(session.Room)
		resp.Room = &room
	}

	return resp
}
