package sale

import "fmt"

// SeatsPerRow is the fixed number of seats per room row. Rooms only store a
// flat capacity, so every seat map is derived with this width.
const SeatsPerRow = 10

// Seat is a (row, column) coordinate inside a room, both 1-based.
type Seat struct {
	Row    int `json:"row"`
	Column int `json:"column"`
}

// SeatAt maps a flat capacity index to its coordinate.
func SeatAt(index int) Seat {
	return Seat{
		Row:    index/SeatsPerRow + 1,
		Column: index%SeatsPerRow + 1,
	}
}

// SeatsFor lists every seat of a room with the given capacity, in index order.
func SeatsFor(capacity int) []Seat {
	if capacity <= 0 {
		return nil
	}
	seats := make([]Seat, capacity)
	for i := range seats {
		seats[i] = SeatAt(i)
	}
	return seats
}

// Index is the inverse of SeatAt.
func (s Seat) Index() int {
	return (s.Row-1)*SeatsPerRow + (s.Column - 1)
}

// Within reports whether the seat exists in a room of the given capacity.
func (s Seat) Within(capacity int) bool {
	if s.Row < 1 || s.Column < 1 || s.Column > SeatsPerRow {
		return false
	}
	return s.Index() < capacity
}

func (s Seat) String() string {
	return fmt.Sprintf("%d-%d", s.Row, s.Column)
}
