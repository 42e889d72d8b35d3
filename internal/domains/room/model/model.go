package model

import (
	"github.com/lib/pq"

	"lodge/shared/model"
)

const (
	TableName  = "rooms"
	EntityName = "room"

	FieldID          = "id"
	FieldName        = "name"
	FieldCategory    = "category"
	FieldDescription = "description"
	FieldAmenities   = "amenities"
	FieldPrice       = "price"
	FieldMaxGuests   = "max_guests"
	FieldImages      = "images"
	FieldAvailable   = "available"
)

const (
	CategorySingle = "single"
	CategoryDouble = "double"
	CategorySuite  = "suite"
	CategoryDeluxe = "deluxe"
)

// Categories lists every valid room category.
var Categories = []string{CategorySingle, CategoryDouble, CategorySuite, CategoryDeluxe}

// Room is the persisted inventory record. Price is stored in minor units
// (kobo); conversion to naira happens at the DTO boundary.
type Room struct {
	ID          string         `db:"id"`
	Name        string         `db:"name"`
	Category    string         `db:"category"`
	Description string         `db:"description"`
	Amenities   pq.StringArray `db:"amenities"`
	Price       int64          `db:"price"`
	MaxGuests   int            `db:"max_guests"`
	Images      pq.StringArray `db:"images"`
	Available   bool           `db:"available"`
	model.Metadata
}
