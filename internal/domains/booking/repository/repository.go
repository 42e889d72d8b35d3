package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"time"

	"lodge/infras/otel"
	"lodge/infras/postgres"
	"lodge/internal/domains/booking/model"
	"lodge/shared/constant"
	gDto "lodge/shared/dto"
	"lodge/shared/logger"
	gRepo "lodge/shared/repository"
)

type Booking interface {
	Insert(ctx context.Context, model model.Booking) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Booking, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Booking, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	ExistOverlapping(ctx context.Context, roomID string, checkIn, checkOut time.Time) (bool, error)
	GetOverlappingRoomIDs(ctx context.Context, checkIn, checkOut time.Time) ([]string, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Booking]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Booking {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Booking](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// ExistOverlapping reports whether any active booking for the room overlaps
// the half-open [checkIn, checkOut) interval. Same-day turnover is allowed.
func (repo *repositoryImpl) ExistOverlapping(ctx context.Context, roomID string, checkIn, checkOut time.Time) (bool, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.ExistOverlapping")
	defer scope.End()

	query := fmt.Sprintf(`SELECT EXISTS(
		SELECT 1 FROM %s
		WHERE %s = :room_id
		AND %s IN ('%s', '%s')
		AND %s < :check_out
		AND %s > :check_in
	)`, model.TableName, model.FieldRoomID, model.FieldStatus, model.StatusConfirmed, model.StatusPending, model.FieldCheckIn, model.FieldCheckOut)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	args := map[string]any{
		"room_id":   roomID,
		"check_in":  checkIn,
		"check_out": checkOut,
	}

	exist := false

	prepare, err := repo.db.Read.PrepareNamedContext(ctx, query)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return false, fmt.Errorf("failed to check overlapping booking: %w", err)
	}
	defer prepare.Close()

	if err = prepare.GetContext(ctx, &exist, args); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return false, fmt.Errorf("failed to check overlapping booking: %w", err)
	}

	return exist, nil
}

// GetOverlappingRoomIDs returns the rooms held by an active booking that
// overlaps the half-open [checkIn, checkOut) interval.
func (repo *repositoryImpl) GetOverlappingRoomIDs(ctx context.Context, checkIn, checkOut time.Time) ([]string, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.GetOverlappingRoomIDs")
	defer scope.End()

	query := fmt.Sprintf(`SELECT DISTINCT %s FROM %s
		WHERE %s IN ('%s', '%s')
		AND %s < :check_out
		AND %s > :check_in`,
		model.FieldRoomID, model.TableName, model.FieldStatus, model.StatusConfirmed, model.StatusPending, model.FieldCheckIn, model.FieldCheckOut)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	args := map[string]any{
		"check_in":  checkIn,
		"check_out": checkOut,
	}

	var roomIDs []string

	prepare, err := repo.db.Read.PrepareNamedContext(ctx, query)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to get overlapping room ids: %w", err)
	}
	defer prepare.Close()

	if err = prepare.SelectContext(ctx, &roomIDs, args); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to get overlapping room ids: %w", err)
	}

	return roomIDs, nil
}
