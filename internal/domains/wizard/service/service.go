package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"lodge/config"
	"lodge/infras/otel"
	bookingDto "lodge/internal/domains/booking/model/dto"
	bookingService "lodge/internal/domains/booking/service"
	roomModel "lodge/internal/domains/room/model"
	roomRepository "lodge/internal/domains/room/repository"
	"lodge/internal/domains/wizard/model"
	"lodge/internal/domains/wizard/model/dto"
	"lodge/internal/domains/wizard/repository"
	"lodge/shared"
	"lodge/shared/constant"
	"lodge/shared/dates"
	"lodge/shared/failure"
	"lodge/shared/timezone"
)

// Wizard drives the four-step booking flow. Each operation loads the session,
// applies one change, and persists it back, so the session store is the only
// mutable state.
type Wizard interface {
	Start(ctx context.Context, req dto.StartWizardRequest) (dto.SessionResponse, error)
	Get(ctx context.Context, id string) (dto.SessionResponse, error)
	SetDates(ctx context.Context, id string, req dto.SetDatesRequest) (dto.SessionResponse, error)
	SetGuestDetails(ctx context.Context, id string, req dto.SetGuestDetailsRequest) (dto.SessionResponse, error)
	Advance(ctx context.Context, id string) (dto.SessionResponse, error)
	Abandon(ctx context.Context, id string) error
}

type serviceImpl struct {
	store    repository.SessionStore
	roomRepo roomRepository.Room
	bookings bookingService.Booking
	cfg      *config.Config
	otel     otel.Otel
}

func New(store repository.SessionStore, roomRepo roomRepository.Room, bookings bookingService.Booking, cfg *config.Config, otel otel.Otel) Wizard {
	return &serviceImpl{
		store:    store,
		roomRepo: roomRepo,
		bookings: bookings,
		cfg:      cfg,
		otel:     otel,
	}
}

// Start opens a session on the dates step, seeded with a one-night stay for
// one guest starting today. The room's name, rate and capacity are snapshotted
// into the draft.
func (s *serviceImpl) Start(ctx context.Context, req dto.StartWizardRequest) (res dto.SessionResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Start")
	defer scope.End()
	defer scope.TraceIfError(err)

	room, err := s.roomRepo.Get(ctx, shared.FilterByID(req.RoomID, roomModel.FieldID, roomModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get room")

		return res, fmt.Errorf("failed to get room: %w", err)
	}

	if room.ID == constant.Empty {
		return res, failure.NotFound("room not found") // nolint:wrapcheck
	}

	if !room.Available {
		return res, failure.Conflict("room is not available") // nolint:wrapcheck
	}

	now := timezone.Now()

	session := model.Session{
		ID:   uuid.NewString(),
		Step: model.StepDates,
		Draft: model.Draft{
			RoomID:       room.ID,
			RoomName:     room.Name,
			NightlyPrice: room.Price,
			MaxGuests:    room.MaxGuests,
			CheckIn:      dates.Today(),
			CheckOut:     dates.Tomorrow(),
			Guests:       1,
		},
		State:      model.NewAppState().SelectRoom(room.ID).BeginBooking(),
		CreatedAt:  now,
		ModifiedAt: now,
	}

	if err = s.store.Save(ctx, session); err != nil {
		log.Error().Err(err).Msg("failed to save wizard session")

		return res, fmt.Errorf("failed to save wizard session: %w", err)
	}

	res.FromModel(session)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.SessionResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	session, err := s.load(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(session)

	return res, nil
}

// SetDates is only valid on the dates step; the flow never walks backwards.
func (s *serviceImpl) SetDates(ctx context.Context, id string, req dto.SetDatesRequest) (res dto.SessionResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".SetDates")
	defer scope.End()
	defer scope.TraceIfError(err)

	session, err := s.load(ctx, id)
	if err != nil {
		return res, err
	}

	if session.Step != model.StepDates {
		return res, failure.Conflict("dates can no longer be changed") // nolint:wrapcheck
	}

	checkIn, err := dates.Parse(req.CheckIn)
	if err != nil {
		return res, failure.BadRequestFromString("check_in must be a date in YYYY-MM-DD format") // nolint:wrapcheck
	}

	checkOut, err := dates.Parse(req.CheckOut)
	if err != nil {
		return res, failure.BadRequestFromString("check_out must be a date in YYYY-MM-DD format") // nolint:wrapcheck
	}

	if !checkOut.After(checkIn) {
		return res, failure.BadRequestFromString("stay must be at least one night") // nolint:wrapcheck
	}

	if req.Guests > session.Draft.MaxGuests {
		return res, failure.BadRequestFromString(fmt.Sprintf("room holds at most %d guests", session.Draft.MaxGuests)) // nolint:wrapcheck
	}

	session.Draft.CheckIn = req.CheckIn
	session.Draft.CheckOut = req.CheckOut
	session.Draft.Guests = req.Guests

	return s.persist(ctx, session)
}

// SetGuestDetails is only valid on the details step.
func (s *serviceImpl) SetGuestDetails(ctx context.Context, id string, req dto.SetGuestDetailsRequest) (res dto.SessionResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".SetGuestDetails")
	defer scope.End()
	defer scope.TraceIfError(err)

	session, err := s.load(ctx, id)
	if err != nil {
		return res, err
	}

	if session.Step != model.StepDetails {
		return res, failure.Conflict("guest details can only be set on the details step") // nolint:wrapcheck
	}

	session.Draft.GuestName = req.GuestName
	session.Draft.GuestEmail = req.GuestEmail
	session.Draft.GuestPhone = req.GuestPhone

	return s.persist(ctx, session)
}

// Advance moves the session one step forward. Leaving the payment step
// submits the draft to the booking ledger exactly once: the submitting flag
// is persisted before the ledger call and a concurrent attempt is rejected
// while it is raised. A failed submission lowers the flag and leaves the
// session on the payment step.
func (s *serviceImpl) Advance(ctx context.Context, id string) (res dto.SessionResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Advance")
	defer scope.End()
	defer scope.TraceIfError(err)

	session, err := s.load(ctx, id)
	if err != nil {
		return res, err
	}

	switch session.Step {
	case model.StepDates:
		nights, err := session.Draft.Nights()
		if err != nil || nights < 1 {
			return res, failure.BadRequestFromString("stay must be at least one night") // nolint:wrapcheck
		}

		session.Step = model.StepDetails

		return s.persist(ctx, session)

	case model.StepDetails:
		if session.Draft.GuestName == constant.Empty || session.Draft.GuestEmail == constant.Empty || session.Draft.GuestPhone == constant.Empty {
			return res, failure.BadRequestFromString("guest name, email and phone are required") // nolint:wrapcheck
		}

		session.Step = model.StepPayment

		return s.persist(ctx, session)

	case model.StepPayment:
		return s.submit(ctx, session)

	default:
		return res, failure.Conflict("booking is already confirmed") // nolint:wrapcheck
	}
}

func (s *serviceImpl) submit(ctx context.Context, session model.Session) (res dto.SessionResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".submit")
	defer scope.End()
	defer scope.TraceIfError(err)

	if session.Submitting {
		return res, failure.SubmissionInFlight // nolint:wrapcheck
	}

	session.Submitting = true
	session.ModifiedAt = timezone.Now()

	if err = s.store.Save(ctx, session); err != nil {
		log.Error().Err(err).Msg("failed to save wizard session")

		return res, fmt.Errorf("failed to save wizard session: %w", err)
	}

	booking, err := s.bookings.Create(ctx, bookingDto.CreateBookingRequest{
		RoomID:       session.Draft.RoomID,
		GuestName:    session.Draft.GuestName,
		GuestEmail:   session.Draft.GuestEmail,
		GuestPhone:   session.Draft.GuestPhone,
		CheckIn:      session.Draft.CheckIn,
		CheckOut:     session.Draft.CheckOut,
		Guests:       session.Draft.Guests,
		NightlyPrice: session.Draft.NightlyPrice,
	})

	if err != nil {
		log.Error().Err(err).Str("sessionID", session.ID).Msg("booking submission failed")

		session.Submitting = false
		if saveErr := s.store.Save(ctx, session); saveErr != nil {
			log.Error().Err(saveErr).Msg("failed to save wizard session")
		}

		return res, err
	}

	session.Submitting = false
	session.Step = model.StepConfirmation
	session.BookingID = booking.ID

	return s.persist(ctx, session)
}

func (s *serviceImpl) Abandon(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Abandon")
	defer scope.End()
	defer scope.TraceIfError(err)

	if _, err = s.load(ctx, id); err != nil {
		return err
	}

	if err = s.store.Delete(ctx, id); err != nil {
		log.Error().Err(err).Msg("failed to delete wizard session")

		return fmt.Errorf("failed to delete wizard session: %w", err)
	}

	return nil
}

func (s *serviceImpl) load(ctx context.Context, id string) (model.Session, error) {
	session, found, err := s.store.Get(ctx, id)
	if err != nil {
		log.Error().Err(err).Msg("failed to get wizard session")

		return model.Session{}, fmt.Errorf("failed to get wizard session: %w", err)
	}

	if !found {
		return model.Session{}, failure.NotFound("wizard session not found") // nolint:wrapcheck
	}

	return session, nil
}

func (s *serviceImpl) persist(ctx context.Context, session model.Session) (res dto.SessionResponse, err error) {
	session.ModifiedAt = timezone.Now()

	if err = s.store.Save(ctx, session); err != nil {
		log.Error().Err(err).Msg("failed to save wizard session")

		return res, fmt.Errorf("failed to save wizard session: %w", err)
	}

	res.FromModel(session)

	return res, nil
}
