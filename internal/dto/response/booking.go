package response

import (
	"time"

	"movietix/internal/data/entity"
)

type BookingResponse struct {
	ID          string    `json:"id"`
	MovieID     int       `json:"movieId"`
	ShowtimeID  int       `json:"showTimeId"`
	SeatIDs     []int     `json:"seats"`
	SeatNames   []string  `json:"seatNames,omitempty"`
	TotalAmount int       `json:"totalAmount"`
	BookingDate time.Time `json:"bookingDate"`
	UserID      *int      `json:"userId,omitempty"`
}

func BookingToResponse(b *entity.Booking, seatNames []string) BookingResponse {
	return BookingResponse{
		ID:          b.ID,
		MovieID:     b.MovieID,
		ShowtimeID:  b.ShowtimeID,
		SeatIDs:     b.SeatIDs,
		SeatNames:   seatNames,
		TotalAmount: b.TotalAmount,
		BookingDate: b.BookingDate,
		UserID:      b.UserID,
	}
}
