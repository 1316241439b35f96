package response

import "movietix/internal/data/entity"

type MovieResponse struct {
	ID           int    `json:"id"`
	Title        string `json:"title"`
	Genre        string `json:"genre"`
	DurationMins int    `json:"durationMins"`
	PosterURL    string `json:"posterUrl"`
}

type ShowtimeResponse struct {
	ID      int    `json:"id"`
	MovieID int    `json:"movieId"`
	Time    string `json:"time"`
	Date    string `json:"date"`
}

type SeatResponse struct {
	ID         int             `json:"id"`
	Name       string          `json:"name"`
	Type       entity.SeatType `json:"type"`
	Booked     bool            `json:"booked"`
	ShowtimeID int             `json:"showTimeId"`
}

func MovieToResponse(m *entity.Movie) MovieResponse {
	return MovieResponse{
		ID:           m.ID,
		Title:        m.Title,
		Genre:        m.Genre,
		DurationMins: m.DurationMins,
		PosterURL:    m.PosterURL,
	}
}

func MoviesToResponse(movies []*entity.Movie) []MovieResponse {
	out := make([]MovieResponse, len(movies))
	for i, m := range movies {
		out[i] = MovieToResponse(m)
	}
	return out
}

func ShowtimeToResponse(st *entity.Showtime) ShowtimeResponse {
	return ShowtimeResponse{
		ID:      st.ID,
		MovieID: st.MovieID,
		Time:    st.Time,
		Date:    st.Date,
	}
}

func ShowtimesToResponse(showtimes []*entity.Showtime) []ShowtimeResponse {
	out := make([]ShowtimeResponse, len(showtimes))
	for i, st := range showtimes {
		out[i] = ShowtimeToResponse(st)
	}
	return out
}

func SeatToResponse(seat *entity.Seat) SeatResponse {
	return SeatResponse{
		ID:         seat.ID,
		Name:       seat.Name,
		Type:       seat.Type,
		Booked:     seat.Booked,
		ShowtimeID: seat.ShowtimeID,
	}
}

func SeatsToResponse(seats []*entity.Seat) []SeatResponse {
	out := make([]SeatResponse, len(seats))
	for i, seat := range seats {
		out[i] = SeatToResponse(seat)
	}
	return out
}
