package model

import (
	"time"

	"lodge/shared/dates"
)

const EntityName = "wizard_session"

// Step is a stage of the booking wizard. The flow is one-directional:
// dates -> details -> payment -> confirmation.
type Step string

const (
	StepDates        Step = "dates"
	StepDetails      Step = "details"
	StepPayment      Step = "payment"
	StepConfirmation Step = "confirmation"
)

// Next returns the step that follows, or the same step once the flow is
// complete.
func (s Step) Next() Step {
	switch s {
	case StepDates:
		return StepDetails
	case StepDetails:
		return StepPayment
	case StepPayment:
		return StepConfirmation
	default:
		return s
	}
}

// Draft accumulates the guest's choices across the wizard steps. The room
// snapshot (name, nightly rate, capacity) is taken when the session starts so
// the quoted price cannot drift mid-flow. NightlyPrice is minor units.
type Draft struct {
	RoomID       string `json:"room_id"`
	RoomName     string `json:"room_name"`
	NightlyPrice int64  `json:"nightly_price"`
	MaxGuests    int    `json:"max_guests"`
	CheckIn      string `json:"check_in"`
	CheckOut     string `json:"check_out"`
	Guests       int    `json:"guests"`
	GuestName    string `json:"guest_name"`
	GuestEmail   string `json:"guest_email"`
	GuestPhone   string `json:"guest_phone"`
}

// Nights derives the stay length from the draft dates.
func (d Draft) Nights() (int, error) {
	return dates.Nights(d.CheckIn, d.CheckOut)
}

// TotalPriceMinor derives the stay total in minor units. It is never stored
// on the draft; the ledger freezes its own copy at submission.
func (d Draft) TotalPriceMinor() (int64, error) {
	nights, err := d.Nights()
	if err != nil {
		return 0, err
	}

	return d.NightlyPrice * int64(nights), nil
}

// Session is one guest's trip through the wizard. Submitting guards the
// payment step: it is raised before the ledger call and lowered afterwards,
// so a second submission attempt is rejected while one is in flight.
type Session struct {
	ID         string    `json:"id"`
	Step       Step      `json:"step"`
	Draft      Draft     `json:"draft"`
	State      AppState  `json:"state"`
	Submitting bool      `json:"submitting"`
	BookingID  string    `json:"booking_id"`
	CreatedAt  time.Time `json:"created_at"`
	ModifiedAt time.Time `json:"modified_at"`
}
