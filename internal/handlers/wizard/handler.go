package wizard

import (
	"net/http"

	"lodge/infras/otel"
	"lodge/internal/domains/wizard/model/dto"
	"lodge/internal/domains/wizard/service"
	"lodge/shared/constant"
	"lodge/shared/validator"
	"lodge/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Wizard
	otel    otel.Otel
}

func New(service service.Wizard, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/wizard/sessions", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.StartSession)
		routerGroup.Get("/{id}", handler.GetSession)
		routerGroup.Patch("/{id}/dates", handler.SetDates)
		routerGroup.Patch("/{id}/details", handler.SetGuestDetails)
		routerGroup.Post("/{id}/advance", handler.Advance)
		routerGroup.Delete("/{id}", handler.AbandonSession)
	})
}

// StartSession opens a booking wizard session for a room.
// @Summary Start a booking wizard session
// @Description Open a wizard session for the given room, seeded with a one-night stay for one guest.
// @Tags Wizard
// @Accept json
// @Produce json
// @Param request body dto.StartWizardRequest true "Start Wizard Request"
// @Success 201 {object} response.Data[dto.SessionResponse] "Wizard session started"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/wizard/sessions [post]
func (handler *Handler) StartSession(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".StartSession")
	defer scope.End()

	req := dto.StartWizardRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Start(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to start wizard session")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Wizard session started")

	response.WithJSON(w, http.StatusCreated, res)
}

// GetSession retrieves a wizard session.
// @Summary Get a wizard session
// @Description Retrieve the current step, draft, and view state of a wizard session.
// @Tags Wizard
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} response.Data[dto.SessionResponse] "Wizard session"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/wizard/sessions/{id} [get]
func (handler *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetSession")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	res, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get wizard session")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Wizard session retrieved")

	response.WithJSON(w, http.StatusOK, res)
}

// SetDates updates the stay dates of a session on the date step.
// @Summary Set wizard stay dates
// @Description Set the check-in and check-out dates and party size. Only allowed on the date step.
// @Tags Wizard
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body dto.SetDatesRequest true "Set Dates Request"
// @Success 200 {object} response.Data[dto.SessionResponse] "Updated wizard session"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/wizard/sessions/{id}/dates [patch]
func (handler *Handler) SetDates(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SetDates")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.SetDatesRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.SetDates(ctx, id, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to set wizard dates")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Wizard dates set")

	response.WithJSON(w, http.StatusOK, res)
}

// SetGuestDetails updates the guest contact details on the details step.
// @Summary Set wizard guest details
// @Description Set the guest name, email, and phone. Only allowed on the details step.
// @Tags Wizard
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body dto.SetGuestDetailsRequest true "Set Guest Details Request"
// @Success 200 {object} response.Data[dto.SessionResponse] "Updated wizard session"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/wizard/sessions/{id}/details [patch]
func (handler *Handler) SetGuestDetails(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SetGuestDetails")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.SetGuestDetailsRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.SetGuestDetails(ctx, id, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to set wizard guest details")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Wizard guest details set")

	response.WithJSON(w, http.StatusOK, res)
}

// Advance moves the session to its next step.
// @Summary Advance the wizard
// @Description Move the session forward one step. Advancing from the payment step submits the booking exactly once.
// @Tags Wizard
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} response.Data[dto.SessionResponse] "Advanced wizard session"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/wizard/sessions/{id}/advance [post]
func (handler *Handler) Advance(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Advance")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	res, err := handler.service.Advance(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to advance wizard session")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Wizard session advanced")

	response.WithJSON(w, http.StatusOK, res)
}

// AbandonSession discards a wizard session.
// @Summary Abandon a wizard session
// @Description Discard the session and its draft. The ledger is untouched.
// @Tags Wizard
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} response.Message "Wizard session abandoned"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/wizard/sessions/{id} [delete]
func (handler *Handler) AbandonSession(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".AbandonSession")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Abandon(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to abandon wizard session")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Wizard session abandoned")

	response.WithMessage(w, http.StatusOK, "Wizard session abandoned")
}
