package utils

import "strconv"

// ParseID converts a path parameter to a positive int id.
func ParseID(value string) (int, bool) {
	id, err := strconv.Atoi(value)
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}
