package entity

import (
	"time"
)

// Movie is exhibited between ScreeningStart and the end of ScreeningEnd's day.
type Movie struct {
	Base
	Title           string    `db:"title"`
	Synopsis        string    `db:"synopsis"`
	DurationMinutes int       `db:"duration_minutes"`
	Rating          string    `db:"rating"`
	Genre           string    `db:"genre"`
	ScreeningStart  time.Time `db:"screening_start"`
	ScreeningEnd    time.Time `db:"screening_end"`
}

// ShowsAt reports whether t falls inside the exhibition window. The
// screening dates are calendar days in loc.
func (m *Movie) ShowsAt(t time.Time, loc *time.Location) bool {
	startY, startM, startD := m.ScreeningStart.Date()
	endY, endM, endD := m.ScreeningEnd.Date()
	start := time.Date(startY, startM, startD, 0, 0, 0, 0, loc)
	end := time.Date(endY, endM, endD+1, 0, 0, 0, 0, loc)
	return !t.Before(start) && t.Before(end)
}
