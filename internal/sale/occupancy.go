package sale

import (
	"sort"

	"github.com/google/uuid"
)

// Occupancy is the set of seats already sold for one session.
type Occupancy map[Seat]struct{}

// OccupiedSeats collects the seats of every ticket line in orders that
// belongs to sessionID. It never caches: callers pass the latest order list.
func OccupiedSeats(sessionID uuid.UUID, orders []Order) Occupancy {
	occ := make(Occupancy)
	for _, order := range orders {
		for _, ticket := range order.Tickets {
			if ticket.SessionID == sessionID {
				occ[ticket.Seat] = struct{}{}
			}
		}
	}
	return occ
}

func (o Occupancy) Has(seat Seat) bool {
	_, ok := o[seat]
	return ok
}

func (o Occupancy) Len() int {
	return len(o)
}

// Seats returns the occupied seats sorted by row, then column.
func (o Occupancy) Seats() []Seat {
	seats := make([]Seat, 0, len(o))
	for seat := range o {
		seats = append(seats, seat)
	}
	sort.Slice(seats, func(i, j int) bool {
		return seats[i].Index() < seats[j].Index()
	})
	return seats
}

// RemainingCapacity is capacity minus occupied seats, never below zero.
func RemainingCapacity(capacity int, occ Occupancy) int {
	remaining := capacity - occ.Len()
	if remaining < 0 {
		return 0
	}
	return remaining
}
