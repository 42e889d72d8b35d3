package service_test

import (
	"context"
	"errors"
	"mime/multipart"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"lodge/config"
	"lodge/infras/otel/mocks"
	s3Mocks "lodge/infras/s3/mocks"
	bookingMocks "lodge/internal/domains/booking/mocks"
	roomMocks "lodge/internal/domains/room/mocks"
	"lodge/internal/domains/room/model"
	"lodge/internal/domains/room/model/dto"
	"lodge/internal/domains/room/service"
	cacheMocks "lodge/shared/cache/mocks"
	"lodge/shared/constant"
	gDto "lodge/shared/dto"
	gModel "lodge/shared/model"
	"lodge/shared/timezone"
)

func newRoomService(t *testing.T) (service.Room, *roomMocks.MockRoom, *bookingMocks.MockBooking, *cacheMocks.MockRedisCache, *s3Mocks.MockS3) {
	t.Helper()

	ctrl := gomock.NewController(t)

	mockRepo := roomMocks.NewMockRoom(ctrl)
	mockBookingRepo := bookingMocks.NewMockBooking(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()
	mockS3 := s3Mocks.NewMockS3(ctrl)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600
	cfg.External.S3.BucketName = "test-bucket"

	svc := service.New(mockRepo, mockBookingRepo, cfg, mockCache, mockOtel, mockS3)

	return svc, mockRepo, mockBookingRepo, mockCache, mockS3
}

func TestRoomService_Create(t *testing.T) {
	tests := []struct {
		name      string
		req       dto.CreateRoomRequest
		setupMock func(repo *roomMocks.MockRoom, cache *cacheMocks.MockRedisCache)
		wantErr   bool
	}{
		{
			name: "successful creation",
			req: dto.CreateRoomRequest{
				Name:      "Classic Double",
				Category:  model.CategoryDouble,
				Price:     30000,
				MaxGuests: 2,
			},
			setupMock: func(repo *roomMocks.MockRoom, cache *cacheMocks.MockRedisCache) {
				repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, room model.Room) error {
						assert.Equal(t, int64(3000000), room.Price, "price should be stored in minor units")

						return nil
					})

				cache.EXPECT().
					Clear(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr: false,
		},
		{
			name: "repository error",
			req: dto.CreateRoomRequest{
				Name:      "Classic Double",
				Category:  model.CategoryDouble,
				Price:     30000,
				MaxGuests: 2,
			},
			setupMock: func(repo *roomMocks.MockRoom, _ *cacheMocks.MockRedisCache) {
				repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, mockRepo, _, mockCache, _ := newRoomService(t)
			tt.setupMock(mockRepo, mockCache)

			ctx := context.WithValue(context.Background(), constant.ContextKeyAdminID, "test-admin-id")
			err := svc.Create(ctx, tt.req)

			time.Sleep(10 * time.Millisecond)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRoomService_GetAll(t *testing.T) {
	svc, mockRepo, _, mockCache, _ := newRoomService(t)

	rooms := []model.Room{
		{
			ID:        "room-1",
			Name:      "Classic Double",
			Category:  model.CategoryDouble,
			Price:     3000000,
			MaxGuests: 2,
			Available: true,
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
		Return(rooms, nil)

	mockCache.EXPECT().
		Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil).
		AnyTimes()

	result, err := svc.GetAll(context.Background(), gDto.QueryParams{Limit: 10, Page: 1}, gDto.FilterGroup{})

	time.Sleep(10 * time.Millisecond)

	assert.NoError(t, err)
	assert.Equal(t, 1, result.TotalData)
	assert.Len(t, result.Rooms, 1)
	assert.Equal(t, int64(30000), result.Rooms[0].Price, "response price should be major units")
	assert.Equal(t, "₦30,000", result.Rooms[0].PriceFormatted)
}

func TestRoomService_GetAvailable(t *testing.T) {
	tests := []struct {
		name      string
		query     dto.AvailabilityQuery
		setupMock func(repo *roomMocks.MockRoom, bookingRepo *bookingMocks.MockBooking, cache *cacheMocks.MockRedisCache)
		wantErr   bool
	}{
		{
			name: "successful listing sorted by price ascending",
			query: dto.AvailabilityQuery{
				CheckIn:  "2026-03-15",
				CheckOut: "2026-03-18",
				Guests:   2,
			},
			setupMock: func(repo *roomMocks.MockRoom, bookingRepo *bookingMocks.MockBooking, cache *cacheMocks.MockRedisCache) {
				bookingRepo.EXPECT().
					GetOverlappingRoomIDs(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil, nil)

				cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss")).
					Times(2)

				repo.EXPECT().
					Count(gomock.Any(), gomock.Any()).
					Return(0, nil)

				repo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, params gDto.QueryParams, _ gDto.FilterGroup, _ ...string) ([]model.Room, error) {
						assert.Equal(t, model.FieldPrice, params.SortBy)
						assert.Equal(t, gDto.SortDirAsc, params.SortDir)

						return nil, nil
					})

				cache.EXPECT().
					Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr: false,
		},
		{
			name: "rooms booked over the dates are excluded",
			query: dto.AvailabilityQuery{
				CheckIn:  "2026-03-15",
				CheckOut: "2026-03-18",
				Guests:   2,
			},
			setupMock: func(repo *roomMocks.MockRoom, bookingRepo *bookingMocks.MockBooking, cache *cacheMocks.MockRedisCache) {
				bookingRepo.EXPECT().
					GetOverlappingRoomIDs(gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]string{"room-2"}, nil)

				cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss")).
					Times(2)

				repo.EXPECT().
					Count(gomock.Any(), gomock.Any()).
					Return(0, nil)

				repo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ gDto.QueryParams, filter gDto.FilterGroup, _ ...string) ([]model.Room, error) {
						excluded := false

						for _, raw := range filter.Filters {
							fill, ok := raw.(gDto.Filter)
							if !ok || fill.Operator != gDto.FilterOperatorNotIn {
								continue
							}

							excluded = true
							assert.Equal(t, model.FieldID, fill.Field)
							assert.Equal(t, []string{"room-2"}, fill.Value)
						}

						assert.True(t, excluded, "booked rooms should be filtered out of the listing")

						return nil, nil
					})

				cache.EXPECT().
					Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr: false,
		},
		{
			name: "check out before check in",
			query: dto.AvailabilityQuery{
				CheckIn:  "2026-03-18",
				CheckOut: "2026-03-15",
				Guests:   2,
			},
			setupMock: func(_ *roomMocks.MockRoom, _ *bookingMocks.MockBooking, _ *cacheMocks.MockRedisCache) {},
			wantErr:   true,
		},
		{
			name: "malformed check in",
			query: dto.AvailabilityQuery{
				CheckIn:  "15/03/2026",
				CheckOut: "2026-03-18",
				Guests:   2,
			},
			setupMock: func(_ *roomMocks.MockRoom, _ *bookingMocks.MockBooking, _ *cacheMocks.MockRedisCache) {},
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, mockRepo, mockBookingRepo, mockCache, _ := newRoomService(t)
			tt.setupMock(mockRepo, mockBookingRepo, mockCache)

			_, err := svc.GetAvailable(context.Background(), tt.query, gDto.QueryParams{Limit: 10, Page: 1})

			time.Sleep(10 * time.Millisecond)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRoomService_Get(t *testing.T) {
	room := model.Room{
		ID:        "room-1",
		Name:      "Executive Suite",
		Category:  model.CategorySuite,
		Price:     6500000,
		MaxGuests: 3,
		Available: true,
	}

	tests := []struct {
		name      string
		id        string
		setupMock func(repo *roomMocks.MockRoom, cache *cacheMocks.MockRedisCache)
		wantErr   bool
		wantID    string
	}{
		{
			name: "cache hit",
			id:   "room-1",
			setupMock: func(_ *roomMocks.MockRoom, cache *cacheMocks.MockRedisCache) {
				cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr: false,
		},
		{
			name: "cache miss, successful get from db",
			id:   "room-1",
			setupMock: func(repo *roomMocks.MockRoom, cache *cacheMocks.MockRedisCache) {
				cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(room, nil)

				cache.EXPECT().
					Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr: false,
			wantID:  "room-1",
		},
		{
			name: "room not found",
			id:   "nonexistent-id",
			setupMock: func(repo *roomMocks.MockRoom, cache *cacheMocks.MockRedisCache) {
				cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Room{}, nil)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, mockRepo, _, mockCache, _ := newRoomService(t)
			tt.setupMock(mockRepo, mockCache)

			result, err := svc.Get(context.Background(), tt.id)

			time.Sleep(10 * time.Millisecond)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				if tt.wantID != "" {
					assert.Equal(t, tt.wantID, result.ID)
				}
			}
		})
	}
}

func TestRoomService_Update(t *testing.T) {
	tests := []struct {
		name      string
		req       dto.UpdateRoomRequest
		id        string
		setupMock func(repo *roomMocks.MockRoom, cache *cacheMocks.MockRedisCache)
		wantErr   bool
	}{
		{
			name: "successful update",
			req: dto.UpdateRoomRequest{
				Name: "Renovated Double",
			},
			id: "room-1",
			setupMock: func(repo *roomMocks.MockRoom, cache *cacheMocks.MockRedisCache) {
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
			name: "room not found",
			req: dto.UpdateRoomRequest{
				Name: "Renovated Double",
			},
			id: "nonexistent-id",
			setupMock: func(repo *roomMocks.MockRoom, _ *cacheMocks.MockRedisCache) {
				repo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, mockRepo, _, mockCache, _ := newRoomService(t)
			tt.setupMock(mockRepo, mockCache)

			ctx := context.WithValue(context.Background(), constant.ContextKeyAdminID, "test-admin-id")
			err := svc.Update(ctx, tt.req, tt.id)

			time.Sleep(10 * time.Millisecond)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRoomService_UploadImage(t *testing.T) {
	room := model.Room{
		ID:     "room-1",
		Images: []string{"https://example.com/bucket/existing.jpg"},
	}

	tests := []struct {
		name      string
		id        string
		setupMock func(repo *roomMocks.MockRoom, cache *cacheMocks.MockRedisCache, s3 *s3Mocks.MockS3)
		wantErr   bool
	}{
		{
			name: "successful upload",
			id:   "room-1",
			setupMock: func(repo *roomMocks.MockRoom, cache *cacheMocks.MockRedisCache, s3 *s3Mocks.MockS3) {
				repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(room, nil)

				s3.EXPECT().
					UploadFile(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return("https://example.com/bucket/new.jpg", nil)

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
			name: "room not found",
			id:   "nonexistent-id",
			setupMock: func(repo *roomMocks.MockRoom, _ *cacheMocks.MockRedisCache, _ *s3Mocks.MockS3) {
				repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Room{}, nil)
			},
			wantErr: true,
		},
		{
			name: "upload error",
			id:   "room-1",
			setupMock: func(repo *roomMocks.MockRoom, _ *cacheMocks.MockRedisCache, s3 *s3Mocks.MockS3) {
				repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(room, nil)

				s3.EXPECT().
					UploadFile(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return("", errors.New("s3 upload error"))
			},
			wantErr: true,
		},
		{
			name: "uploaded object removed when update fails",
			id:   "room-1",
			setupMock: func(repo *roomMocks.MockRoom, _ *cacheMocks.MockRedisCache, s3 *s3Mocks.MockS3) {
				repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(room, nil)

				s3.EXPECT().
					UploadFile(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return("https://example.com/bucket/new.jpg", nil)

				repo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("database error"))

				s3.EXPECT().
					DeleteFile(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, mockRepo, _, mockCache, mockS3 := newRoomService(t)
			tt.setupMock(mockRepo, mockCache, mockS3)

			req := dto.UploadRoomImageRequest{
				Image: &multipart.FileHeader{
					Filename: "test-image.jpg",
				},
				ImageFile: nil,
			}

			ctx := context.WithValue(context.Background(), constant.ContextKeyAdminID, "test-admin-id")
			url, err := svc.UploadImage(ctx, tt.id, req)

			time.Sleep(10 * time.Millisecond)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.NotEmpty(t, url)
			}
		})
	}
}

func TestRoomService_Delete(t *testing.T) {
	tests := []struct {
		name      string
		id        string
		setupMock func(repo *roomMocks.MockRoom, cache *cacheMocks.MockRedisCache)
		wantErr   bool
	}{
		{
			name: "successful deletion",
			id:   "room-1",
			setupMock: func(repo *roomMocks.MockRoom, cache *cacheMocks.MockRedisCache) {
				repo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				repo.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
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
			name: "room not found",
			id:   "nonexistent-id",
			setupMock: func(repo *roomMocks.MockRoom, _ *cacheMocks.MockRedisCache) {
				repo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, mockRepo, _, mockCache, _ := newRoomService(t)
			tt.setupMock(mockRepo, mockCache)

			err := svc.Delete(context.Background(), tt.id)

			time.Sleep(10 * time.Millisecond)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
