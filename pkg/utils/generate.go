package utils

import (
	"fmt"
	"math/rand"
)

// bookingIDPrefix is the printed ticket prefix.
const bookingIDPrefix = "MTIX"

// GenerateBookingID returns the prefix followed by a zero-padded random
// 7-digit numeral, e.g. MTIX0042137. The space is small enough that the
// storage layer enforces uniqueness and the booking engine retries on
// collision.
func GenerateBookingID() string {
	return fmt.Sprintf("%s%07d", bookingIDPrefix, rand.Intn(10000000))
}
