package dates_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"lodge/shared/dates"
)

func TestNights(t *testing.T) {
	tests := []struct {
		name     string
		checkIn  string
		checkOut string
		want     int
		wantErr  bool
	}{
		{name: "single night", checkIn: "2024-06-01", checkOut: "2024-06-02", want: 1},
		{name: "three nights", checkIn: "2024-06-01", checkOut: "2024-06-04", want: 3},
		{name: "same day is zero nights", checkIn: "2024-06-01", checkOut: "2024-06-01", want: 0},
		{name: "reversed dates use the absolute difference", checkIn: "2024-06-04", checkOut: "2024-06-01", want: 3},
		{name: "across a month boundary", checkIn: "2024-01-30", checkOut: "2024-02-02", want: 3},
		{name: "across a leap day", checkIn: "2024-02-28", checkOut: "2024-03-01", want: 2},
		{name: "invalid check-in", checkIn: "01/06/2024", checkOut: "2024-06-02", wantErr: true},
		{name: "invalid check-out", checkIn: "2024-06-01", checkOut: "notadate", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := dates.Nights(tt.checkIn, tt.checkOut)

			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTodayTomorrow(t *testing.T) {
	today := dates.Today()
	tomorrow := dates.Tomorrow()

	start, err := dates.Parse(today)
	assert.NoError(t, err)

	end, err := dates.Parse(tomorrow)
	assert.NoError(t, err)

	assert.Equal(t, start.AddDate(0, 0, 1), end)

	nights, err := dates.Nights(today, tomorrow)
	assert.NoError(t, err)
	assert.Equal(t, 1, nights)
}

func TestFormatDisplay(t *testing.T) {
	assert.Equal(t, "Sat, 1 Jun 2024", dates.FormatDisplay("2024-06-01"))

	// Unparseable input comes back untouched.
	assert.Equal(t, "junk", dates.FormatDisplay("junk"))
}
