package repository

import (
	"context"
	"time"

	"lodge/internal/domains/booking/model"
	gDto "lodge/shared/dto"
	"lodge/shared/memory"
)

type memoryImpl struct {
	*memory.Store[model.Booking]
}

// NewMemory returns a Booking repository backed by the in-memory store. The
// ledger starts empty; rooms carry the fixture data.
func NewMemory() Booking {
	return &memoryImpl{
		Store: memory.NewStore(model.EntityName, model.FieldID, []model.Booking{}),
	}
}

func (repo *memoryImpl) ExistOverlapping(ctx context.Context, roomID string, checkIn, checkOut time.Time) (bool, error) {
	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldRoomID, Operator: gDto.FilterOperatorEq, Value: roomID},
			gDto.Filter{Field: model.FieldStatus, Operator: gDto.FilterOperatorIn, Value: model.ActiveStatuses},
		},
	}

	bookings, err := repo.GetAll(ctx, gDto.QueryParams{}, filter)
	if err != nil {
		return false, err
	}

	for _, booking := range bookings {
		if booking.CheckIn.Before(checkOut) && booking.CheckOut.After(checkIn) {
			return true, nil
		}
	}

	return false, nil
}

func (repo *memoryImpl) GetOverlappingRoomIDs(ctx context.Context, checkIn, checkOut time.Time) ([]string, error) {
	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldStatus, Operator: gDto.FilterOperatorIn, Value: model.ActiveStatuses},
		},
	}

	bookings, err := repo.GetAll(ctx, gDto.QueryParams{}, filter)
	if err != nil {
		return nil, err
	}

	seen := map[string]bool{}

	var roomIDs []string

	for _, booking := range bookings {
		if !booking.CheckIn.Before(checkOut) || !booking.CheckOut.After(checkIn) {
			continue
		}

		if seen[booking.RoomID] {
			continue
		}

		seen[booking.RoomID] = true
		roomIDs = append(roomIDs, booking.RoomID)
	}

	return roomIDs, nil
}
