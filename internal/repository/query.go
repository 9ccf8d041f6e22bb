package repository

import "strconv"

// itoa keeps dynamically numbered placeholder building readable.
func itoa(n int) string {
	return strconv.Itoa(n)
}
