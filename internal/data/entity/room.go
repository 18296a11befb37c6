package entity

type Room struct {
	Base
	Number   int `db:"number"`
	Capacity int `db:"capacity"`
}
