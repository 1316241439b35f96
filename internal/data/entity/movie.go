package entity

type Movie struct {
	ID           int    `db:"id"`
	Title        string `db:"title"`
	Genre        string `db:"genre"`
	DurationMins int    `db:"duration_mins"`
	PosterURL    string `db:"poster_url"`
}
