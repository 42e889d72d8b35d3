package dto

import (
	"lodge/internal/domains/wizard/model"
	"lodge/shared/currency"
	"lodge/shared/dates"
)

type StartWizardRequest struct {
	RoomID string `json:"room_id" validate:"required"`
}

type SetDatesRequest struct {
	CheckIn  string `json:"check_in"  validate:"required,bookingdate"`
	CheckOut string `json:"check_out" validate:"required,bookingdate"`
	Guests   int    `json:"guests"    validate:"required,gte=1,lte=10"`
}

type SetGuestDetailsRequest struct {
	GuestName  string `json:"guest_name"  validate:"required,max=100"`
	GuestEmail string `json:"guest_email" validate:"required,email,max=100"`
	GuestPhone string `json:"guest_phone" validate:"required,max=20"`
}

// SessionResponse is the wizard session as shown to the guest: prices in
// major units, the stay total derived on the fly.
type SessionResponse struct {
	ID                    string         `json:"id"`
	Step                  model.Step     `json:"step"`
	State                 model.AppState `json:"state"`
	RoomID                string         `json:"room_id"`
	RoomName              string         `json:"room_name"`
	NightlyPrice          int64          `json:"nightly_price"`
	NightlyPriceFormatted string         `json:"nightly_price_formatted"`
	MaxGuests             int            `json:"max_guests"`
	CheckIn               string         `json:"check_in"`
	CheckInDisplay        string         `json:"check_in_display"`
	CheckOut              string         `json:"check_out"`
	CheckOutDisplay       string         `json:"check_out_display"`
	Guests                int            `json:"guests"`
	GuestName             string         `json:"guest_name"`
	GuestEmail            string         `json:"guest_email"`
	GuestPhone            string         `json:"guest_phone"`
	Nights                int            `json:"nights"`
	TotalPrice            int64          `json:"total_price"`
	TotalPriceFormatted   string         `json:"total_price_formatted"`
	BookingID             string         `json:"booking_id,omitempty"`
}

func (r *SessionResponse) FromModel(session model.Session) {
	r.ID = session.ID
	r.Step = session.Step
	r.State = session.State
	r.RoomID = session.Draft.RoomID
	r.RoomName = session.Draft.RoomName
	r.NightlyPrice = currency.FromMinor(session.Draft.NightlyPrice)
	r.NightlyPriceFormatted = currency.FormatNaira(r.NightlyPrice)
	r.MaxGuests = session.Draft.MaxGuests
	r.CheckIn = session.Draft.CheckIn
	r.CheckInDisplay = dates.FormatDisplay(session.Draft.CheckIn)
	r.CheckOut = session.Draft.CheckOut
	r.CheckOutDisplay = dates.FormatDisplay(session.Draft.CheckOut)
	r.Guests = session.Draft.Guests
	r.GuestName = session.Draft.GuestName
	r.GuestEmail = session.Draft.GuestEmail
	r.GuestPhone = session.Draft.GuestPhone
	r.BookingID = session.BookingID

	if nights, err := session.Draft.Nights(); err == nil {
		r.Nights = nights
	}

	if total, err := session.Draft.TotalPriceMinor(); err == nil {
		r.TotalPrice = currency.FromMinor(total)
		r.TotalPriceFormatted = currency.FormatNaira(r.TotalPrice)
	}
}
