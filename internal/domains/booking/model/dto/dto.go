package dto

import (
	"github.com/google/uuid"

	"lodge/internal/domains/booking/model"
	roomModel "lodge/internal/domains/room/model"
	"lodge/shared"
	"lodge/shared/currency"
	"lodge/shared/dates"
	gDto "lodge/shared/dto"
	gModel "lodge/shared/model"
	"lodge/shared/timezone"
)

type CreateBookingRequest struct {
	RoomID     string `json:"room_id"     validate:"required"`
	GuestName  string `json:"guest_name"  validate:"required,max=100"`
	GuestEmail string `json:"guest_email" validate:"required,email,max=100"`
	GuestPhone string `json:"guest_phone" validate:"required,max=20"`
	CheckIn    string `json:"check_in"    validate:"required,bookingdate"`
	CheckOut   string `json:"check_out"   validate:"required,bookingdate"`
	Guests     int    `json:"guests"      validate:"required,gte=1,lte=10"`

	// NightlyPrice carries a rate already quoted to the guest, in minor
	// units. It never comes from the request body; only the wizard sets it
	// when submitting a draft, so the total matches the quote on screen.
	NightlyPrice int64 `json:"-"`
}

// ToModel builds the ledger row. The room is loaded by the service so the
// total can be frozen from the nightly rate and the room name denormalized.
// A quoted rate on the request wins over the room's current price.
func (c *CreateBookingRequest) ToModel(room roomModel.Room, user string) (model.Booking, error) {
	checkIn, err := dates.Parse(c.CheckIn)
	if err != nil {
		return model.Booking{}, err
	}

	checkOut, err := dates.Parse(c.CheckOut)
	if err != nil {
		return model.Booking{}, err
	}

	nights, err := dates.Nights(c.CheckIn, c.CheckOut)
	if err != nil {
		return model.Booking{}, err
	}

	nightly := room.Price
	if c.NightlyPrice > 0 {
		nightly = c.NightlyPrice
	}

	return model.Booking{
		ID:         uuid.NewString(),
		RoomID:     room.ID,
		RoomName:   room.Name,
		GuestName:  c.GuestName,
		GuestEmail: c.GuestEmail,
		GuestPhone: c.GuestPhone,
		CheckIn:    checkIn,
		CheckOut:   checkOut,
		Guests:     c.Guests,
		TotalPrice: nightly * int64(nights),
		Status:     model.StatusConfirmed,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}, nil
}

type UpdateBookingStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending confirmed cancelled"`
}

type BookingResponse struct {
	ID                  string `json:"id"`
	RoomID              string `json:"room_id"`
	RoomName            string `json:"room_name"`
	GuestName           string `json:"guest_name"`
	GuestEmail          string `json:"guest_email"`
	GuestPhone          string `json:"guest_phone"`
	CheckIn             string `json:"check_in"`
	CheckOut            string `json:"check_out"`
	Nights              int    `json:"nights"`
	Guests              int    `json:"guests"`
	TotalPrice          int64  `json:"total_price"`
	TotalPriceFormatted string `json:"total_price_formatted"`
	Status              string `json:"status"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(model model.Booking) {
	r.ID = model.ID
	r.RoomID = model.RoomID
	r.RoomName = model.RoomName
	r.GuestName = model.GuestName
	r.GuestEmail = model.GuestEmail
	r.GuestPhone = model.GuestPhone
	r.CheckIn = model.CheckIn.Format(dates.Layout)
	r.CheckOut = model.CheckOut.Format(dates.Layout)
	r.Nights, _ = dates.Nights(r.CheckIn, r.CheckOut)
	r.Guests = model.Guests
	r.TotalPrice = currency.FromMinor(model.TotalPrice)
	r.TotalPriceFormatted = currency.FormatNaira(r.TotalPrice)
	r.Status = model.Status
	r.Metadata.FromModel(model.Metadata)
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.Booking, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod)
	}
}
