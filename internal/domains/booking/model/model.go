package model

import (
	"time"

	"lodge/shared/model"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID         = "id"
	FieldRoomID     = "room_id"
	FieldRoomName   = "room_name"
	FieldGuestName  = "guest_name"
	FieldGuestEmail = "guest_email"
	FieldGuestPhone = "guest_phone"
	FieldCheckIn    = "check_in"
	FieldCheckOut   = "check_out"
	FieldGuests     = "guests"
	FieldTotalPrice = "total_price"
	FieldStatus     = "status"
)

const (
	StatusConfirmed = "confirmed"
	StatusPending   = "pending"
	StatusCancelled = "cancelled"
)

// ActiveStatuses are the statuses that still hold the room.
var ActiveStatuses = []string{StatusConfirmed, StatusPending}

// Booking is a row in the booking ledger. RoomName is denormalized and
// TotalPrice is frozen in minor units at creation time, so later room edits
// never rewrite booking history.
type Booking struct {
	ID         string    `db:"id"`
	RoomID     string    `db:"room_id"`
	RoomName   string    `db:"room_name"`
	GuestName  string    `db:"guest_name"`
	GuestEmail string    `db:"guest_email"`
	GuestPhone string    `db:"guest_phone"`
	CheckIn    time.Time `db:"check_in"`
	CheckOut   time.Time `db:"check_out"`
	Guests     int       `db:"guests"`
	TotalPrice int64     `db:"total_price"`
	Status     string    `db:"status"`
	model.Metadata
}
