package appointment

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/vetlink/vetlink-api/internal/domain/account"
	"github.com/vetlink/vetlink-api/internal/middleware"
	"github.com/vetlink/vetlink-api/internal/pkg/response"
	"github.com/vetlink/vetlink-api/internal/pkg/validator"
)

// Handler handles appointment HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates appointment handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Book handles POST /appointments
func (h *Handler) Book(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetAccountID(r.Context())

	var req BookRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if errors := validator.Validate(&req); errors != nil {
		response.ValidationError(w, errors)
		return
	}

	appt, err := h.service.Book(r.Context(), userID, &req)
	if err != nil {
		switch err {
		case ErrDoctorNotFound:
			response.NotFound(w, "Doctor not found")
		case ErrDoctorUnavailable:
			response.Conflict(w, "Doctor is not available for booking")
		case ErrScheduledInPast:
			response.BadRequest(w, "Appointment must be scheduled in the future")
		default:
			response.InternalError(w)
		}
		return
	}

	response.Created(w, appt)
}

// ListMine handles GET /appointments
func (h *Handler) ListMine(w http.ResponseWriter, r *http.Request) {
	accountID := middleware.GetAccountID(r.Context())
	accountType := account.Type(middleware.GetAccountType(r.Context()))

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	appointments, err := h.service.ListMine(r.Context(), accountType, accountID, limit, offset)
	if err != nil {
		response.InternalError(w)
		return
	}

	response.OK(w, appointments)
}

// Cancel handles POST /appointments/{id}/cancel
func (h *Handler) Cancel(w http.ResponseWriter, r *http.Request) {
	accountID := middleware.GetAccountID(r.Context())

	appointmentID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid appointment ID")
		return
	}

	var req CancelRequest
	if r.ContentLength > 0 {
		if err := response.DecodeJSON(r.Body, &req); err != nil {
			response.BadRequest(w, "Invalid request body")
			return
		}
		if errors := validator.Validate(&req); errors != nil {
			response.ValidationError(w, errors)
			return
		}
	}

	appt, err := h.service.Cancel(r.Context(), accountID, appointmentID, req.Reason)
	if err != nil {
		switch err {
		case ErrAppointmentNotFound:
			response.NotFound(w, "Appointment not found")
		case ErrNotOwner:
			response.Forbidden(w, "Appointment belongs to another account")
		case ErrAlreadyFinished:
			response.Conflict(w, "Appointment is already completed or cancelled")
		default:
			response.InternalError(w)
		}
		return
	}

	response.OK(w, appt)
}

// Complete handles POST /appointments/{id}/complete
func (h *Handler) Complete(w http.ResponseWriter, r *http.Request) {
	doctorID := middleware.GetAccountID(r.Context())

	appointmentID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid appointment ID")
		return
	}

	appt, err := h.service.Complete(r.Context(), doctorID, appointmentID)
	if err != nil {
		switch err {
		case ErrAppointmentNotFound:
			response.NotFound(w, "Appointment not found")
		case ErrNotOwner:
			response.Forbidden(w, "Appointment belongs to another account")
		case ErrAlreadyFinished:
			response.Conflict(w, "Appointment is already completed or cancelled")
		default:
			response.InternalError(w)
		}
		return
	}

	response.OK(w, appt)
}
