package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"lodge/config"
	"lodge/infras/otel/mocks"
	bookingMocks "lodge/internal/domains/booking/mocks"
	bookingDto "lodge/internal/domains/booking/model/dto"
	roomMocks "lodge/internal/domains/room/mocks"
	roomModel "lodge/internal/domains/room/model"
	"lodge/internal/domains/wizard/model"
	"lodge/internal/domains/wizard/model/dto"
	"lodge/internal/domains/wizard/repository"
	"lodge/internal/domains/wizard/service"
	"lodge/shared/dates"
	"lodge/shared/failure"
)

func newWizardService(t *testing.T) (service.Wizard, *roomMocks.MockRoom, *bookingMocks.MockBookingService, repository.SessionStore) {
	t.Helper()

	ctrl := gomock.NewController(t)

	mockRoomRepo := roomMocks.NewMockRoom(ctrl)
	mockBookings := bookingMocks.NewMockBookingService(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Store.SessionTTL = 1800

	store := repository.NewMemory(cfg)

	return service.New(store, mockRoomRepo, mockBookings, cfg, mockOtel), mockRoomRepo, mockBookings, store
}

func wizardRoom() roomModel.Room {
	return roomModel.Room{
		ID:        "room-1",
		Name:      "Classic Double",
		Category:  roomModel.CategoryDouble,
		Price:     3000000,
		MaxGuests: 2,
		Available: true,
	}
}

// startSession walks a fresh session to the requested step.
func startSession(t *testing.T, svc service.Wizard, roomRepo *roomMocks.MockRoom, until model.Step) dto.SessionResponse {
	t.Helper()

	roomRepo.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		Return(wizardRoom(), nil)

	session, err := svc.Start(context.Background(), dto.StartWizardRequest{RoomID: "room-1"})
	require.NoError(t, err)

	if until == model.StepDates {
		return session
	}

	session, err = svc.SetDates(context.Background(), session.ID, dto.SetDatesRequest{
		CheckIn:  "2026-03-15",
		CheckOut: "2026-03-18",
		Guests:   2,
	})
	require.NoError(t, err)

	session, err = svc.Advance(context.Background(), session.ID)
	require.NoError(t, err)

	if until == model.StepDetails {
		return session
	}

	session, err = svc.SetGuestDetails(context.Background(), session.ID, dto.SetGuestDetailsRequest{
		GuestName:  "Jane Doe",
		GuestEmail: "jane@example.com",
		GuestPhone: "+2348000000000",
	})
	require.NoError(t, err)

	session, err = svc.Advance(context.Background(), session.ID)
	require.NoError(t, err)

	return session
}

func TestWizardService_Start(t *testing.T) {
	t.Run("session defaults to a one night stay for one guest", func(t *testing.T) {
		svc, mockRoomRepo, _, _ := newWizardService(t)

		session := startSession(t, svc, mockRoomRepo, model.StepDates)

		assert.Equal(t, model.StepDates, session.Step)
		assert.Equal(t, dates.Today(), session.CheckIn)
		assert.Equal(t, dates.Tomorrow(), session.CheckOut)
		assert.Equal(t, 1, session.Guests)
		assert.Equal(t, 1, session.Nights)
		assert.Equal(t, int64(30000), session.NightlyPrice, "nightly price should be major units")
		assert.Equal(t, model.ViewWizard, session.State.View)
		assert.Equal(t, "room-1", session.State.RoomID)
	})

	t.Run("unknown room", func(t *testing.T) {
		svc, mockRoomRepo, _, _ := newWizardService(t)

		mockRoomRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(roomModel.Room{}, nil)

		_, err := svc.Start(context.Background(), dto.StartWizardRequest{RoomID: "nonexistent"})

		assert.Error(t, err)
		assert.Equal(t, 404, failure.GetCode(err))
	})

	t.Run("unavailable room", func(t *testing.T) {
		svc, mockRoomRepo, _, _ := newWizardService(t)

		room := wizardRoom()
		room.Available = false

		mockRoomRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(room, nil)

		_, err := svc.Start(context.Background(), dto.StartWizardRequest{RoomID: "room-1"})

		assert.Error(t, err)
		assert.Equal(t, 409, failure.GetCode(err))
	})
}

func TestWizardService_SetDates(t *testing.T) {
	t.Run("three nights at thirty thousand totals ninety thousand", func(t *testing.T) {
		svc, mockRoomRepo, _, _ := newWizardService(t)

		session := startSession(t, svc, mockRoomRepo, model.StepDates)

		updated, err := svc.SetDates(context.Background(), session.ID, dto.SetDatesRequest{
			CheckIn:  "2026-03-15",
			CheckOut: "2026-03-18",
			Guests:   2,
		})

		require.NoError(t, err)
		assert.Equal(t, 3, updated.Nights)
		assert.Equal(t, int64(90000), updated.TotalPrice)
		assert.Equal(t, "₦90,000", updated.TotalPriceFormatted)
	})

	t.Run("zero night stay is rejected", func(t *testing.T) {
		svc, mockRoomRepo, _, _ := newWizardService(t)

		session := startSession(t, svc, mockRoomRepo, model.StepDates)

		_, err := svc.SetDates(context.Background(), session.ID, dto.SetDatesRequest{
			CheckIn:  "2026-03-15",
			CheckOut: "2026-03-15",
			Guests:   2,
		})

		assert.Error(t, err)
		assert.Equal(t, 400, failure.GetCode(err))
	})

	t.Run("too many guests for the room", func(t *testing.T) {
		svc, mockRoomRepo, _, _ := newWizardService(t)

		session := startSession(t, svc, mockRoomRepo, model.StepDates)

		_, err := svc.SetDates(context.Background(), session.ID, dto.SetDatesRequest{
			CheckIn:  "2026-03-15",
			CheckOut: "2026-03-18",
			Guests:   5,
		})

		assert.Error(t, err)
		assert.Equal(t, 400, failure.GetCode(err))
	})

	t.Run("dates are locked once the flow has moved on", func(t *testing.T) {
		svc, mockRoomRepo, _, _ := newWizardService(t)

		session := startSession(t, svc, mockRoomRepo, model.StepDetails)

		_, err := svc.SetDates(context.Background(), session.ID, dto.SetDatesRequest{
			CheckIn:  "2026-04-01",
			CheckOut: "2026-04-02",
			Guests:   1,
		})

		assert.Error(t, err)
		assert.Equal(t, 409, failure.GetCode(err))
	})

	t.Run("unknown session", func(t *testing.T) {
		svc, _, _, _ := newWizardService(t)

		_, err := svc.SetDates(context.Background(), "nonexistent", dto.SetDatesRequest{
			CheckIn:  "2026-03-15",
			CheckOut: "2026-03-18",
			Guests:   1,
		})

		assert.Error(t, err)
		assert.Equal(t, 404, failure.GetCode(err))
	})
}

func TestWizardService_Advance(t *testing.T) {
	t.Run("details step requires guest name, email and phone", func(t *testing.T) {
		svc, mockRoomRepo, _, _ := newWizardService(t)

		session := startSession(t, svc, mockRoomRepo, model.StepDetails)

		_, err := svc.Advance(context.Background(), session.ID)

		assert.Error(t, err)
		assert.Equal(t, 400, failure.GetCode(err))

		current, err := svc.Get(context.Background(), session.ID)
		require.NoError(t, err)
		assert.Equal(t, model.StepDetails, current.Step, "failed advance should not move the session")
	})

	t.Run("empty phone blocks the details step", func(t *testing.T) {
		svc, mockRoomRepo, _, _ := newWizardService(t)

		session := startSession(t, svc, mockRoomRepo, model.StepDetails)

		_, err := svc.SetGuestDetails(context.Background(), session.ID, dto.SetGuestDetailsRequest{
			GuestName:  "Jane Doe",
			GuestEmail: "jane@example.com",
			GuestPhone: "",
		})
		require.NoError(t, err)

		_, err = svc.Advance(context.Background(), session.ID)

		assert.Error(t, err)
		assert.Equal(t, 400, failure.GetCode(err))

		current, err := svc.Get(context.Background(), session.ID)
		require.NoError(t, err)
		assert.Equal(t, model.StepDetails, current.Step, "missing phone should not move the session")
	})

	t.Run("submission confirms the booking", func(t *testing.T) {
		svc, mockRoomRepo, mockBookings, _ := newWizardService(t)

		mockBookings.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, req bookingDto.CreateBookingRequest) (bookingDto.BookingResponse, error) {
				assert.Equal(t, "room-1", req.RoomID)
				assert.Equal(t, "Jane Doe", req.GuestName)
				assert.Equal(t, "2026-03-15", req.CheckIn)
				assert.Equal(t, "2026-03-18", req.CheckOut)
				assert.Equal(t, int64(3000000), req.NightlyPrice, "ledger should receive the rate snapshotted at start")

				return bookingDto.BookingResponse{ID: "booking-1", TotalPrice: 90000}, nil
			})

		session := startSession(t, svc, mockRoomRepo, model.StepPayment)

		confirmed, err := svc.Advance(context.Background(), session.ID)

		require.NoError(t, err)
		assert.Equal(t, model.StepConfirmation, confirmed.Step)
		assert.Equal(t, "booking-1", confirmed.BookingID)
	})

	t.Run("failed submission stays on the payment step", func(t *testing.T) {
		svc, mockRoomRepo, mockBookings, _ := newWizardService(t)

		mockBookings.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			Return(bookingDto.BookingResponse{}, failure.InternalError(assert.AnError))

		session := startSession(t, svc, mockRoomRepo, model.StepPayment)

		_, err := svc.Advance(context.Background(), session.ID)
		assert.Error(t, err)

		current, err := svc.Get(context.Background(), session.ID)
		require.NoError(t, err)
		assert.Equal(t, model.StepPayment, current.Step, "failed submission should not leave payment")

		// The guard must be lowered again so the guest can retry.
		mockBookings.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			Return(bookingDto.BookingResponse{ID: "booking-2"}, nil)

		confirmed, err := svc.Advance(context.Background(), session.ID)
		require.NoError(t, err)
		assert.Equal(t, model.StepConfirmation, confirmed.Step)
	})

	t.Run("second submission is rejected while one is in flight", func(t *testing.T) {
		svc, mockRoomRepo, mockBookings, store := newWizardService(t)

		release := make(chan struct{})
		inFlight := make(chan struct{})

		mockBookings.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ bookingDto.CreateBookingRequest) (bookingDto.BookingResponse, error) {
				close(inFlight)
				<-release

				return bookingDto.BookingResponse{ID: "booking-1"}, nil
			})

		session := startSession(t, svc, mockRoomRepo, model.StepPayment)

		firstDone := make(chan error, 1)
		go func() {
			_, err := svc.Advance(context.Background(), session.ID)
			firstDone <- err
		}()

		<-inFlight

		_, err := svc.Advance(context.Background(), session.ID)
		assert.Error(t, err)
		assert.Equal(t, 409, failure.GetCode(err), "concurrent submission should be rejected")

		close(release)
		require.NoError(t, <-firstDone)

		current, found, err := store.Get(context.Background(), session.ID)
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, model.StepConfirmation, current.Step)
		assert.False(t, current.Submitting)
	})

	t.Run("confirmed session cannot advance again", func(t *testing.T) {
		svc, mockRoomRepo, mockBookings, _ := newWizardService(t)

		mockBookings.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			Return(bookingDto.BookingResponse{ID: "booking-1"}, nil)

		session := startSession(t, svc, mockRoomRepo, model.StepPayment)

		_, err := svc.Advance(context.Background(), session.ID)
		require.NoError(t, err)

		_, err = svc.Advance(context.Background(), session.ID)
		assert.Error(t, err)
		assert.Equal(t, 409, failure.GetCode(err))
	})
}

func TestWizardService_Abandon(t *testing.T) {
	svc, mockRoomRepo, _, _ := newWizardService(t)

	session := startSession(t, svc, mockRoomRepo, model.StepDates)

	err := svc.Abandon(context.Background(), session.ID)
	require.NoError(t, err)

	_, err = svc.Get(context.Background(), session.ID)
	assert.Error(t, err)
	assert.Equal(t, 404, failure.GetCode(err))

	err = svc.Abandon(context.Background(), "nonexistent")
	assert.Error(t, err)
	assert.Equal(t, 404, failure.GetCode(err))
}
