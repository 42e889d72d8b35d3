package currency

import (
	"fmt"
	"strconv"
)

// Monetary values cross the persistence boundary in minor units (kobo); the
// domain layer works exclusively in whole major units (naira). The x100
// conversion happens here and nowhere else.

const minorPerMajor = 100

// ToMinor converts a major-unit amount to minor units for persistence.
func ToMinor(major int64) int64 {
	return major * minorPerMajor
}

// FromMinor converts a persisted minor-unit amount back to whole major units.
func FromMinor(minor int64) int64 {
	return minor / minorPerMajor
}

// FormatNaira renders a major-unit amount with a currency sign and thousands
// separators, e.g. "₦30,000".
func FormatNaira(major int64) string {
	sign := ""
	if major < 0 {
		sign = "-"
		major = -major
	}

	digits := strconv.FormatInt(major, 10)

	var grouped []byte
	for i, d := range []byte(digits) {
		if i > 0 && (len(digits)-i)%3 == 0 {
			grouped = append(grouped, ',')
		}

		grouped = append(grouped, d)
	}

	return fmt.Sprintf("%s₦%s", sign, grouped)
}
