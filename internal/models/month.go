package models

import (
	"strconv"
	"strings"
	"time"
)

// MonthNames lists the English month names in calendar order.
func MonthNames() []string {
	names := make([]string, 12)
	for m := time.January; m <= time.December; m++ {
		names[m-1] = m.String()
	}
	return names
}

// ParseMonth accepts a month number (1-12) or an English month name,
// full or three-letter, in any case.
func ParseMonth(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		if n < 1 || n > 12 {
			return 0, false
		}
		return n, true
	}
	s = strings.ToLower(s)
	if len(s) < 3 {
		return 0, false
	}
	for m := time.January; m <= time.December; m++ {
		name := strings.ToLower(m.String())
		if s == name || s == name[:3] {
			return int(m), true
		}
	}
	return 0, false
}
