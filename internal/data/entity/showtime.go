package entity

// Showtime is one scheduled screening of a movie. Time and Date are the
// display labels the seat map is keyed on ("8:00 PM", "2026-08-29").
type Showtime struct {
	ID      int    `db:"id"`
	MovieID int    `db:"movie_id"`
	Time    string `db:"time"`
	Date    string `db:"date"`
}
