package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"lodge/config"
	"lodge/infras/otel/mocks"
	bookingMocks "lodge/internal/domains/booking/mocks"
	"lodge/internal/domains/booking/model"
	"lodge/internal/domains/booking/model/dto"
	bookingRepository "lodge/internal/domains/booking/repository"
	"lodge/internal/domains/booking/service"
	roomMocks "lodge/internal/domains/room/mocks"
	roomModel "lodge/internal/domains/room/model"
	roomRepository "lodge/internal/domains/room/repository"
	"lodge/shared"
	cacheMocks "lodge/shared/cache/mocks"
	"lodge/shared/constant"
	gDto "lodge/shared/dto"
	"lodge/shared/failure"
	gModel "lodge/shared/model"
	"lodge/shared/timezone"
)

func newBookingService(t *testing.T) (service.Booking, *bookingMocks.MockBooking, *roomMocks.MockRoom, *cacheMocks.MockRedisCache) {
	t.Helper()

	ctrl := gomock.NewController(t)

	mockRepo := bookingMocks.NewMockBooking(ctrl)
	mockRoomRepo := roomMocks.NewMockRoom(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	return service.New(mockRepo, mockRoomRepo, cfg, mockCache, mockOtel), mockRepo, mockRoomRepo, mockCache
}

func testRoom() roomModel.Room {
	return roomModel.Room{
		ID:        "room-1",
		Name:      "Classic Double",
		Category:  roomModel.CategoryDouble,
		Price:     3000000,
		MaxGuests: 2,
		Available: true,
	}
}

func TestBookingService_Create(t *testing.T) {
	validReq := dto.CreateBookingRequest{
		RoomID:     "room-1",
		GuestName:  "Jane Doe",
		GuestEmail: "jane@example.com",
		GuestPhone: "+2348000000000",
		CheckIn:    "2026-03-15",
		CheckOut:   "2026-03-18",
		Guests:     2,
	}

	tests := []struct {
		name       string
		req        dto.CreateBookingRequest
		setupMock  func(repo *bookingMocks.MockBooking, roomRepo *roomMocks.MockRoom, cache *cacheMocks.MockRedisCache)
		wantErr    bool
		wantCode   int
		checkTotal bool
	}{
		{
			name: "three nights freeze the nightly rate into the total",
			req:  validReq,
			setupMock: func(repo *bookingMocks.MockBooking, roomRepo *roomMocks.MockRoom, cache *cacheMocks.MockRedisCache) {
				roomRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(testRoom(), nil)

				repo.EXPECT().
					ExistOverlapping(gomock.Any(), "room-1", gomock.Any(), gomock.Any()).
					Return(false, nil)

				repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, booking model.Booking) error {
						assert.Equal(t, int64(9000000), booking.TotalPrice, "total should be nightly rate x nights in minor units")
						assert.Equal(t, "Classic Double", booking.RoomName, "room name should be denormalized")
						assert.Equal(t, model.StatusConfirmed, booking.Status)

						return nil
					})

				cache.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()

				cache.EXPECT().
					Clear(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr:    false,
			checkTotal: true,
		},
		{
			name: "quoted rate wins over a room price raised mid flow",
			req: func() dto.CreateBookingRequest {
				req := validReq
				req.NightlyPrice = 3000000

				return req
			}(),
			setupMock: func(repo *bookingMocks.MockBooking, roomRepo *roomMocks.MockRoom, cache *cacheMocks.MockRedisCache) {
				room := testRoom()
				room.Price = 6000000

				roomRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(room, nil)

				repo.EXPECT().
					ExistOverlapping(gomock.Any(), "room-1", gomock.Any(), gomock.Any()).
					Return(false, nil)

				repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, booking model.Booking) error {
						assert.Equal(t, int64(9000000), booking.TotalPrice, "total should freeze the quoted rate, not the current price")

						return nil
					})

				cache.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()

				cache.EXPECT().
					Clear(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr:    false,
			checkTotal: true,
		},
		{
			name: "room not found",
			req:  validReq,
			setupMock: func(_ *bookingMocks.MockBooking, roomRepo *roomMocks.MockRoom, _ *cacheMocks.MockRedisCache) {
				roomRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(roomModel.Room{}, nil)
			},
			wantErr:  true,
			wantCode: 404,
		},
		{
			name: "room marked unavailable",
			req:  validReq,
			setupMock: func(_ *bookingMocks.MockBooking, roomRepo *roomMocks.MockRoom, _ *cacheMocks.MockRedisCache) {
				room := testRoom()
				room.Available = false

				roomRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(room, nil)
			},
			wantErr:  true,
			wantCode: 409,
		},
		{
			name: "too many guests",
			req: dto.CreateBookingRequest{
				RoomID:     "room-1",
				GuestName:  "Jane Doe",
				GuestEmail: "jane@example.com",
				CheckIn:    "2026-03-15",
				CheckOut:   "2026-03-18",
				Guests:     5,
			},
			setupMock: func(_ *bookingMocks.MockBooking, roomRepo *roomMocks.MockRoom, _ *cacheMocks.MockRedisCache) {
				roomRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(testRoom(), nil)
			},
			wantErr:  true,
			wantCode: 400,
		},
		{
			name: "zero night stay",
			req: dto.CreateBookingRequest{
				RoomID:     "room-1",
				GuestName:  "Jane Doe",
				GuestEmail: "jane@example.com",
				CheckIn:    "2026-03-15",
				CheckOut:   "2026-03-15",
				Guests:     2,
			},
			setupMock: func(_ *bookingMocks.MockBooking, roomRepo *roomMocks.MockRoom, _ *cacheMocks.MockRedisCache) {
				roomRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(testRoom(), nil)
			},
			wantErr:  true,
			wantCode: 400,
		},
		{
			name: "overlapping stay",
			req:  validReq,
			setupMock: func(repo *bookingMocks.MockBooking, roomRepo *roomMocks.MockRoom, _ *cacheMocks.MockRedisCache) {
				roomRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(testRoom(), nil)

				repo.EXPECT().
					ExistOverlapping(gomock.Any(), "room-1", gomock.Any(), gomock.Any()).
					Return(true, nil)
			},
			wantErr:  true,
			wantCode: 409,
		},
		{
			name: "repository error",
			req:  validReq,
			setupMock: func(repo *bookingMocks.MockBooking, roomRepo *roomMocks.MockRoom, _ *cacheMocks.MockRedisCache) {
				roomRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(testRoom(), nil)

				repo.EXPECT().
					ExistOverlapping(gomock.Any(), "room-1", gomock.Any(), gomock.Any()).
					Return(false, nil)

				repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, mockRepo, mockRoomRepo, mockCache := newBookingService(t)
			tt.setupMock(mockRepo, mockRoomRepo, mockCache)

			res, err := svc.Create(context.Background(), tt.req)

			time.Sleep(10 * time.Millisecond)

			if tt.wantErr {
				assert.Error(t, err)
				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}
			} else {
				assert.NoError(t, err)
				if tt.checkTotal {
					assert.Equal(t, int64(90000), res.TotalPrice, "response total should be major units")
					assert.Equal(t, "₦90,000", res.TotalPriceFormatted)
					assert.Equal(t, 3, res.Nights)
				}
			}
		})
	}
}

func TestBookingService_GetAll(t *testing.T) {
	svc, mockRepo, _, mockCache := newBookingService(t)

	bookings := []model.Booking{
		{
			ID:         "booking-1",
			RoomID:     "room-1",
			RoomName:   "Classic Double",
			GuestName:  "Jane Doe",
			GuestEmail: "jane@example.com",
			CheckIn:    time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
			CheckOut:   time.Date(2026, 3, 18, 0, 0, 0, 0, time.UTC),
			Guests:     2,
			TotalPrice: 9000000,
			Status:     model.StatusConfirmed,
			Metadata: gModel.Metadata{
				CreatedAt:  timezone.Now(),
				ModifiedAt: timezone.Now(),
			},
		},
	}

	mockCache.EXPECT().
		Get(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(errors.New("cache miss")).
		Times(2)

	mockRepo.EXPECT().
		Count(gomock.Any(), gomock.Any()).
		Return(1, nil)

	mockRepo.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(bookings, nil)

	mockCache.EXPECT().
		Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil).
		AnyTimes()

	result, err := svc.GetAll(context.Background(), gDto.QueryParams{Limit: 10, Page: 1}, gDto.FilterGroup{})

	time.Sleep(10 * time.Millisecond)

	assert.NoError(t, err)
	assert.Equal(t, 1, result.TotalData)
	assert.Len(t, result.Bookings, 1)
	assert.Equal(t, int64(90000), result.Bookings[0].TotalPrice)
	assert.Equal(t, 3, result.Bookings[0].Nights)
}

func TestBookingService_GetByRoom(t *testing.T) {
	svc, mockRepo, _, mockCache := newBookingService(t)

	mockCache.EXPECT().
		Get(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(errors.New("cache miss")).
		Times(2)

	mockRepo.EXPECT().
		Count(gomock.Any(), gomock.Any()).
		Return(0, nil)

	mockRepo.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, params gDto.QueryParams, _ gDto.FilterGroup, _ ...string) ([]model.Booking, error) {
			assert.Equal(t, model.FieldCheckIn, params.SortBy, "room bookings should sort by check in")
			assert.Equal(t, gDto.SortDirAsc, params.SortDir)

			return nil, nil
		})

	mockCache.EXPECT().
		Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil).
		AnyTimes()

	_, err := svc.GetByRoom(context.Background(), "room-1", gDto.QueryParams{Limit: 10, Page: 1})

	time.Sleep(10 * time.Millisecond)

	assert.NoError(t, err)
}

func TestBookingService_GetByEmail(t *testing.T) {
	svc, mockRepo, _, mockCache := newBookingService(t)

	mockCache.EXPECT().
		Get(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(errors.New("cache miss")).
		Times(2)

	mockRepo.EXPECT().
		Count(gomock.Any(), gomock.Any()).
		Return(0, nil)

	mockRepo.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, params gDto.QueryParams, _ gDto.FilterGroup, _ ...string) ([]model.Booking, error) {
			assert.Equal(t, constant.DefaultValueSortBy, params.SortBy, "guest bookings should default to most recent first")
			assert.Equal(t, constant.DefaultValueSortDir, params.SortDir)

			return nil, nil
		})

	mockCache.EXPECT().
		Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil).
		AnyTimes()

	_, err := svc.GetByEmail(context.Background(), "jane@example.com", gDto.QueryParams{Limit: 10, Page: 1})

	time.Sleep(10 * time.Millisecond)

	assert.NoError(t, err)
}

func TestBookingService_UpdateStatus(t *testing.T) {
	tests := []struct {
		name      string
		id        string
		req       dto.UpdateBookingStatusRequest
		setupMock func(repo *bookingMocks.MockBooking, cache *cacheMocks.MockRedisCache)
		wantErr   bool
		wantCode  int
	}{
		{
			name: "successful status update",
			id:   "booking-1",
			req:  dto.UpdateBookingStatusRequest{Status: model.StatusCancelled},
			setupMock: func(repo *bookingMocks.MockBooking, cache *cacheMocks.MockRedisCache) {
				repo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				repo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)

				cache.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()

				cache.EXPECT().
					Clear(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr: false,
		},
		{
			name: "unknown booking leaves ledger unchanged",
			id:   "nonexistent-id",
			req:  dto.UpdateBookingStatusRequest{Status: model.StatusCancelled},
			setupMock: func(repo *bookingMocks.MockBooking, _ *cacheMocks.MockRedisCache) {
				repo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)
			},
			wantErr:  true,
			wantCode: 404,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, mockRepo, _, mockCache := newBookingService(t)
			tt.setupMock(mockRepo, mockCache)

			err := svc.UpdateStatus(context.Background(), tt.id, tt.req)

			time.Sleep(10 * time.Millisecond)

			if tt.wantErr {
				assert.Error(t, err)
				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestBookingService_Cancel(t *testing.T) {
	svc, mockRepo, _, mockCache := newBookingService(t)

	mockRepo.EXPECT().
		Exist(gomock.Any(), gomock.Any()).
		Return(true, nil)

	mockRepo.EXPECT().
		Update(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
			assert.Equal(t, model.StatusCancelled, fields[model.FieldStatus])

			return nil
		})

	mockCache.EXPECT().
		Delete(gomock.Any(), gomock.Any()).
		Return(nil).
		AnyTimes()

	mockCache.EXPECT().
		Clear(gomock.Any(), gomock.Any()).
		Return(nil).
		AnyTimes()

	err := svc.Cancel(context.Background(), "booking-1")

	time.Sleep(10 * time.Millisecond)

	assert.NoError(t, err)
}

// newMemoryLedger wires the booking service onto the in-memory backings so
// room mutations and the ledger can be exercised together.
func newMemoryLedger(t *testing.T) (service.Booking, bookingRepository.Booking, roomRepository.Room, roomModel.Room) {
	t.Helper()

	ctrl := gomock.NewController(t)

	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss")).AnyTimes()
	mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	roomRepo := roomRepository.NewMemory()
	bookingRepo := bookingRepository.NewMemory()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	rooms, err := roomRepo.GetAll(context.Background(), gDto.QueryParams{}, gDto.FilterGroup{})
	require.NoError(t, err)

	var room roomModel.Room

	for _, candidate := range rooms {
		if candidate.Available && candidate.MaxGuests >= 2 {
			room = candidate

			break
		}
	}

	require.NotEmpty(t, room.ID, "fixture inventory should hold a bookable double")

	svc := service.New(bookingRepo, roomRepo, cfg, mockCache, mocks.NewOtel())

	return svc, bookingRepo, roomRepo, room
}

func memoryLedgerRequest(roomID string) dto.CreateBookingRequest {
	return dto.CreateBookingRequest{
		RoomID:     roomID,
		GuestName:  "Jane Doe",
		GuestEmail: "jane@example.com",
		GuestPhone: "+2348000000000",
		CheckIn:    "2026-03-15",
		CheckOut:   "2026-03-18",
		Guests:     2,
	}
}

func TestBookingService_TotalSurvivesRoomPriceChange(t *testing.T) {
	svc, bookingRepo, roomRepo, room := newMemoryLedger(t)

	created, err := svc.Create(context.Background(), memoryLedgerRequest(room.ID))
	require.NoError(t, err)

	err = roomRepo.Update(
		context.Background(),
		map[string]any{roomModel.FieldPrice: room.Price * 2},
		shared.FilterByID(room.ID, roomModel.FieldID, roomModel.TableName),
	)
	require.NoError(t, err)

	stored, err := bookingRepo.Get(context.Background(), shared.FilterByID(created.ID, model.FieldID, model.TableName))
	require.NoError(t, err)
	assert.Equal(t, room.Price*3, stored.TotalPrice, "a later price change must not touch the frozen total")

	time.Sleep(10 * time.Millisecond)
}

func TestBookingService_LedgerSurvivesRoomDeletion(t *testing.T) {
	svc, bookingRepo, roomRepo, room := newMemoryLedger(t)

	created, err := svc.Create(context.Background(), memoryLedgerRequest(room.ID))
	require.NoError(t, err)

	err = roomRepo.Delete(context.Background(), shared.FilterByID(room.ID, roomModel.FieldID, roomModel.TableName))
	require.NoError(t, err)

	gone, err := roomRepo.Get(context.Background(), shared.FilterByID(room.ID, roomModel.FieldID, roomModel.TableName))
	require.NoError(t, err)
	assert.Empty(t, gone.ID, "room should be gone from the directory")

	stored, err := bookingRepo.Get(context.Background(), shared.FilterByID(created.ID, model.FieldID, model.TableName))
	require.NoError(t, err)
	assert.Equal(t, created.ID, stored.ID, "deleting the room must leave its bookings in the ledger")
	assert.Equal(t, room.Name, stored.RoomName, "denormalized room name should survive the deletion")
	assert.Equal(t, model.StatusConfirmed, stored.Status)

	time.Sleep(10 * time.Millisecond)
}
