package entity

type SeatType string

const (
	SeatTypeGold SeatType = "GOLD"
	SeatTypeRed  SeatType = "RED"
	SeatTypeBlue SeatType = "BLUE"
)

// Price is fixed per seat type and not configurable at runtime.
func (t SeatType) Price() int {
	switch t {
	case SeatTypeGold:
		return 400
	case SeatTypeRed:
		return 250
	case SeatTypeBlue:
		return 150
	}
	return 0
}

// RenderRank orders seat sections for deterministic seat-map rendering:
// GOLD rows first, then RED, then BLUE.
func (t SeatType) RenderRank() int {
	switch t {
	case SeatTypeGold:
		return 0
	case SeatTypeRed:
		return 1
	case SeatTypeBlue:
		return 2
	}
	return 3
}

type Seat struct {
	ID         int      `db:"id"`
	Name       string   `db:"name"` // G1, R4, B12, etc.
	Type       SeatType `db:"type"`
	Booked     bool     `db:"booked"`
	ShowtimeID int      `db:"showtime_id"`
}
