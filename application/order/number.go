package order

import (
	"fmt"
	"strconv"
	"strings"
)

// NextOrderNumber returns the order number following last within year.
// last is the highest existing number of that year, "" when there is none.
// The sequence is everything after the year and is zero-padded to three
// digits, so 2025007 is followed by 2025008 and 2025999 by 20251000.
func NextOrderNumber(year, last string) string {
	seq := 1
	if strings.HasPrefix(last, year) {
		if n, err := strconv.Atoi(last[len(year):]); err == nil && n >= 0 {
			seq = n + 1
		}
	}
	return fmt.Sprintf("%s%03d", year, seq)
}
