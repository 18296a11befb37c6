package sale

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestSeatAt(t *testing.T) {
	tests := []struct {
		index int
		want  Seat
	}{
		{index: 0, want: Seat{Row: 1, Column: 1}},
		{index: 9, want: Seat{Row: 1, Column: 10}},
		{index: 10, want: Seat{Row: 2, Column: 1}},
		{index: 57, want: Seat{Row: 6, Column: 8}},
	}

	for _, tt := range tests {
		got := SeatAt(tt.index)
		assert.Equal(t, tt.want, got)
		assert.Equal(t, tt.index, got.Index())
	}
}

func TestSeatsFor(t *testing.T) {
	seats := SeatsFor(25)

	assert.Len(t, seats, 25)
	assert.Equal(t, Seat{Row: 3, Column: 5}, seats[24])
	assert.Nil(t, SeatsFor(0))

	for _, seat := range seats {
		assert.True(t, seat.Within(25), "seat %s", seat)
	}
	assert.False(t, Seat{Row: 3, Column: 6}.Within(25))
}

func TestOccupiedSeats(t *testing.T) {
	other := uuid.New()
	orders := []Order{
		{Tickets: []TicketLine{
			{SessionID: testSessionID, Seat: Seat{Row: 2, Column: 3}},
			{SessionID: other, Seat: Seat{Row: 1, Column: 1}},
		}},
		{Tickets: []TicketLine{
			{SessionID: testSessionID, Seat: Seat{Row: 1, Column: 1}},
		}},
		{Snacks: []SnackLine{{Name: "Popcorn", Quantity: 1}}},
	}

	occ := OccupiedSeats(testSessionID, orders)

	want := []Seat{{Row: 1, Column: 1}, {Row: 2, Column: 3}}
	if diff := cmp.Diff(want, occ.Seats()); diff != "" {
		t.Errorf("occupied seats mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 18, RemainingCapacity(20, occ))
	assert.Empty(t, OccupiedSeats(testSessionID, nil))
	assert.Equal(t, 0, RemainingCapacity(1, occ))
}
