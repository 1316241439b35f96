package request

// CreateBookingRequest mirrors the checkout payload. Field names follow the
// front-end's camelCase wire format.
type CreateBookingRequest struct {
	MovieID    int   `json:"movieId" validate:"required,gt=0"`
	ShowtimeID int   `json:"showTimeId" validate:"required,gt=0"`
	SeatIDs    []int `json:"seats" validate:"required,min=1"`
}
