package repository

import (
	"github.com/google/uuid"
	"github.com/lib/pq"

	"lodge/internal/domains/room/model"
	"lodge/shared/memory"
	gModel "lodge/shared/model"
	"lodge/shared/timezone"
)

// NewMemory returns a Room repository backed by the in-memory store, seeded
// with a small fixture inventory. Used for local development and tests where
// no database is available.
func NewMemory() Room {
	return memory.NewStore(model.EntityName, model.FieldID, FixtureRooms())
}

// FixtureRooms covers every category so listings and wizard flows have
// realistic data to work with. Prices are minor units (kobo).
func FixtureRooms() []model.Room {
	now := timezone.Now()

	meta := gModel.Metadata{
		CreatedAt:  now,
		ModifiedAt: now,
		CreatedBy:  "seed",
		ModifiedBy: "seed",
	}

	return []model.Room{
		{
			ID:          uuid.NewString(),
			Name:        "Standard Single",
			Category:    model.CategorySingle,
			Description: "A cosy single room with a work desk and city view.",
			Amenities:   pq.StringArray{"Wi-Fi", "Air Conditioning", "Work Desk"},
			Price:       1500000,
			MaxGuests:   1,
			Images:      pq.StringArray{},
			Available:   true,
			Metadata:    meta,
		},
		{
			ID:          uuid.NewString(),
			Name:        "Classic Double",
			Category:    model.CategoryDouble,
			Description: "Queen bed, en-suite bathroom and breakfast included.",
			Amenities:   pq.StringArray{"Wi-Fi", "Air Conditioning", "Breakfast", "TV"},
			Price:       3000000,
			MaxGuests:   2,
			Images:      pq.StringArray{},
			Available:   true,
			Metadata:    meta,
		},
		{
			ID:          uuid.NewString(),
			Name:        "Executive Suite",
			Category:    model.CategorySuite,
			Description: "Separate living area, king bed and panoramic views.",
			Amenities:   pq.StringArray{"Wi-Fi", "Air Conditioning", "Mini Bar", "Living Area", "Room Service"},
			Price:       6500000,
			MaxGuests:   3,
			Images:      pq.StringArray{},
			Available:   true,
			Metadata:    meta,
		},
		{
			ID:          uuid.NewString(),
			Name:        "Presidential Deluxe",
			Category:    model.CategoryDeluxe,
			Description: "Top-floor deluxe room with jacuzzi and private balcony.",
			Amenities:   pq.StringArray{"Wi-Fi", "Air Conditioning", "Jacuzzi", "Balcony", "Butler Service"},
			Price:       12000000,
			MaxGuests:   4,
			Images:      pq.StringArray{},
			Available:   false,
			Metadata:    meta,
		},
	}
}
