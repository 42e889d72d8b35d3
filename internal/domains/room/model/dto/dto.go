package dto

import (
	"mime/multipart"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"lodge/internal/domains/room/model"
	"lodge/shared"
	"lodge/shared/currency"
	gDto "lodge/shared/dto"
	gModel "lodge/shared/model"
	"lodge/shared/timezone"
)

// CreateRoomRequest carries prices in whole naira; conversion to minor units
// happens in ToModel.
type CreateRoomRequest struct {
	Name        string   `json:"name"        validate:"required,max=100"`
	Category    string   `json:"category"    validate:"required,oneof=single double suite deluxe"`
	Description string   `json:"description" validate:"omitempty,max=2000"`
	Amenities   []string `json:"amenities"   validate:"omitempty,dive,max=50"`
	Price       int64    `json:"price"       validate:"required,gte=0"`
	MaxGuests   int      `json:"max_guests"  validate:"required,gte=1,lte=10"`
	Images      []string `json:"images"      validate:"omitempty,dive,url"`
	Available   *bool    `json:"available"   validate:"omitempty"`
}

func (c *CreateRoomRequest) ToModel(user string) model.Room {
	available := true
	if c.Available != nil {
		available = *c.Available
	}

	return model.Room{
		ID:          uuid.NewString(),
		Name:        c.Name,
		Category:    c.Category,
		Description: c.Description,
		Amenities:   pq.StringArray(c.Amenities),
		Price:       currency.ToMinor(c.Price),
		MaxGuests:   c.MaxGuests,
		Images:      pq.StringArray(c.Images),
		Available:   available,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateRoomRequest struct {
	Name        string   `db:"name"        json:"name"        validate:"omitempty,max=100"`
	Category    string   `db:"category"    json:"category"    validate:"omitempty,oneof=single double suite deluxe"`
	Description *string  `db:"description" json:"description" validate:"omitempty,max=2000"`
	Amenities   []string `json:"amenities"  validate:"omitempty,dive,max=50"`
	Price       *int64   `json:"price"      validate:"omitempty,gte=0"`
	MaxGuests   *int     `db:"max_guests"  json:"max_guests"  validate:"omitempty,gte=1,lte=10"`
	Available   *bool    `db:"available"   json:"available"   validate:"omitempty"`
}

// ToFields builds the partial-update column map. Amenities and price need
// explicit handling: the former for array conversion, the latter for the
// minor-unit conversion.
func (u *UpdateRoomRequest) ToFields(user string) map[string]any {
	fields := shared.TransformFields(*u, user)

	if u.Amenities != nil {
		fields[model.FieldAmenities] = pq.StringArray(u.Amenities)
	}

	if u.Price != nil {
		fields[model.FieldPrice] = currency.ToMinor(*u.Price)
	}

	return fields
}

// AvailabilityQuery narrows the room listing to rooms that can host a stay.
type AvailabilityQuery struct {
	CheckIn  string `json:"check_in"  validate:"required,bookingdate"`
	CheckOut string `json:"check_out" validate:"required,bookingdate"`
	Guests   int    `json:"guests"    validate:"required,gte=1,lte=10"`
}

// UploadRoomImageRequest is the multipart payload for adding a gallery image
// to an existing room.
type UploadRoomImageRequest struct {
	Image     *multipart.FileHeader `json:"image" validate:"required,mimetypes=image/png image/jpg image/jpeg,maxfilesize=2"`
	ImageFile multipart.File        `json:"-"`
}

type RoomResponse struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Category       string   `json:"category"`
	Description    string   `json:"description"`
	Amenities      []string `json:"amenities"`
	Price          int64    `json:"price"`
	PriceFormatted string   `json:"price_formatted"`
	MaxGuests      int      `json:"max_guests"`
	Images         []string `json:"images"`
	Available      bool     `json:"available"`
	gDto.Metadata
}

func (r *RoomResponse) FromModel(model model.Room) {
	r.ID = model.ID
	r.Name = model.Name
	r.Category = model.Category
	r.Description = model.Description
	r.Amenities = model.Amenities
	r.Price = currency.FromMinor(model.Price)
	r.PriceFormatted = currency.FormatNaira(r.Price)
	r.MaxGuests = model.MaxGuests
	r.Images = model.Images
	r.Available = model.Available
	r.Metadata.FromModel(model.Metadata)
}

type GetRoomsResponse struct {
	Rooms     []RoomResponse `json:"rooms"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetRoomsResponse) FromModels(models []model.Room, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Rooms = make([]RoomResponse, len(models))
	for i, mod := range models {
		r.Rooms[i].FromModel(mod)
	}
}
