package entity

import "time"

// Booking is an immutable record of a completed seat reservation for one
// showtime. ID is the printed ticket token (MTIX + 7 digits), not a serial.
type Booking struct {
	ID          string    `db:"id"`
	MovieID     int       `db:"movie_id"`
	ShowtimeID  int       `db:"showtime_id"`
	SeatIDs     []int     `db:"seats"`
	TotalAmount int       `db:"total_amount"`
	BookingDate time.Time `db:"booking_date"`
	UserID      *int      `db:"user_id"` // nil for guest checkout
}
