package dates

import (
	"fmt"
	"math"
	"time"

	"lodge/shared/timezone"
)

// Layout is the wire format for calendar dates: ISO 8601 without a time component.
const Layout = "2006-01-02"

const displayLayout = "Mon, 2 Jan 2006"

// Parse parses an ISO calendar date string.
func Parse(value string) (time.Time, error) {
	t, err := time.Parse(Layout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid calendar date %q: %w", value, err)
	}

	return t, nil
}

// Nights returns the whole number of calendar-day intervals between check-in and
// check-out: ceil(|checkOut - checkIn| in days). Equal dates yield zero.
func Nights(checkIn, checkOut string) (int, error) {
	start, err := Parse(checkIn)
	if err != nil {
		return 0, err
	}

	end, err := Parse(checkOut)
	if err != nil {
		return 0, err
	}

	diff := end.Sub(start).Hours()

	return int(math.Ceil(math.Abs(diff) / 24)), nil
}

// Today returns the current calendar date in the application timezone.
func Today() string {
	return timezone.Now().Format(Layout)
}

// Tomorrow returns the calendar date one day after Today.
func Tomorrow() string {
	return timezone.Now().AddDate(0, 0, 1).Format(Layout)
}

// FormatDisplay renders an ISO calendar date for human-facing summaries, e.g.
// "Sat, 1 Jun 2024". The input is returned untouched when it does not parse.
func FormatDisplay(value string) string {
	t, err := Parse(value)
	if err != nil {
		return value
	}

	return t.Format(displayLayout)
}
