package repository

import (
	"strconv"
	"time"

	"movietix/internal/data/entity"
)

// seatsPerShowtime partitions the seat id space so generated seat ids never
// collide across showtimes: showtime N owns ids (N-1)*64+1 .. N*64.
const seatsPerShowtime = 64

var seedShowtimeLabels = []string{"10:00 AM", "1:30 PM", "4:45 PM", "8:00 PM", "11:15 PM"}

func seedMovies() []*entity.Movie {
	return []*entity.Movie{
		{ID: 1, Title: "Avengers: Endgame", Genre: "Action/Sci-Fi", DurationMins: 181, PosterURL: "/posters/avengers-endgame.jpg"},
		{ID: 2, Title: "The Lion King", Genre: "Animation/Adventure", DurationMins: 118, PosterURL: "/posters/lion-king.jpg"},
		{ID: 3, Title: "Joker", Genre: "Thriller/Drama", DurationMins: 122, PosterURL: "/posters/joker.jpg"},
		{ID: 4, Title: "Parasite", Genre: "Thriller/Drama", DurationMins: 132, PosterURL: "/posters/parasite.jpg"},
		{ID: 5, Title: "Spider-Man: No Way Home", Genre: "Action/Adventure", DurationMins: 148, PosterURL: "/posters/spiderman-nwh.jpg"},
		{ID: 6, Title: "Dune", Genre: "Sci-Fi/Adventure", DurationMins: 155, PosterURL: "/posters/dune.jpg"},
	}
}

func seedShowtimes(movies []*entity.Movie) []*entity.Showtime {
	date := time.Now().Format("2006-01-02")
	var showtimes []*entity.Showtime
	id := 1
	for _, movie := range movies {
		for _, label := range seedShowtimeLabels {
			showtimes = append(showtimes, &entity.Showtime{
				ID:      id,
				MovieID: movie.ID,
				Time:    label,
				Date:    date,
			})
			id++
		}
	}
	return showtimes
}

// generateSeats builds the fixed 64-seat map for one showtime:
// 8 GOLD (G1..G8), 20 RED (R1..R20), 36 BLUE (B1..B36), all unbooked.
func generateSeats(showtimeID int) []*entity.Seat {
	id := (showtimeID-1)*seatsPerShowtime + 1

	sections := []struct {
		prefix string
		typ    entity.SeatType
		count  int
	}{
		{"G", entity.SeatTypeGold, 8},
		{"R", entity.SeatTypeRed, 20},
		{"B", entity.SeatTypeBlue, 36},
	}

	var seats []*entity.Seat
	for _, section := range sections {
		for i := 1; i <= section.count; i++ {
			seats = append(seats, &entity.Seat{
				ID:         id,
				Name:       section.prefix + strconv.Itoa(i),
				Type:       section.typ,
				Booked:     false,
				ShowtimeID: showtimeID,
			})
			id++
		}
	}
	return seats
}
