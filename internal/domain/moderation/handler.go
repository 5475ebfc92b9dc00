package moderation

import (
	"net/http"

	"github.com/vetlink/vetlink-api/internal/domain/account"
	"github.com/vetlink/vetlink-api/internal/middleware"
	"github.com/vetlink/vetlink-api/internal/pkg/response"
	"github.com/vetlink/vetlink-api/internal/pkg/validator"
)

// Handler handles self-service moderation HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates moderation handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// CreateReport files a report against another account
// POST /moderation/reports
func (h *Handler) CreateReport(w http.ResponseWriter, r *http.Request) {
	reporterID := middleware.GetAccountID(r.Context())
	reporterType := account.Type(middleware.GetAccountType(r.Context()))

	var req CreateReportRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if errors := validator.Validate(&req); errors != nil {
		response.ValidationError(w, errors)
		return
	}

	report, err := h.service.SubmitReport(r.Context(), SubmitReportParams{
		ReporterType:  reporterType,
		ReporterID:    reporterID,
		ReportedType:  account.Type(req.ReportedType),
		ReportedID:    req.ReportedID,
		AppointmentID: req.AppointmentID,
		Reason:        ReportReason(req.Reason),
		Description:   req.Description,
		Evidence:      req.Evidence,
	})
	if err != nil {
		switch err {
		case ErrCannotReportSelf:
			response.BadRequest(w, "Cannot report yourself")
		case account.ErrAccountNotFound:
			response.NotFound(w, "Reported account not found")
		case ErrDuplicateReport:
			response.Conflict(w, "An open report for this account already exists")
		default:
			response.InternalError(w)
		}
		return
	}

	response.Created(w, map[string]string{"report_id": report.ID.String()})
}

// ListMyReports lists reports filed by the current account
// GET /moderation/reports/mine
func (h *Handler) ListMyReports(w http.ResponseWriter, r *http.Request) {
	reporterID := middleware.GetAccountID(r.Context())

	reports, err := h.service.ListMyReports(r.Context(), reporterID)
	if err != nil {
		response.InternalError(w)
		return
	}

	response.OK(w, reports)
}

// CreateUnbanRequest files an unban petition for the current (banned) account
// POST /moderation/unban-requests
func (h *Handler) CreateUnbanRequest(w http.ResponseWriter, r *http.Request) {
	requesterID := middleware.GetAccountID(r.Context())
	requesterType := account.Type(middleware.GetAccountType(r.Context()))

	var req CreateUnbanRequestRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if errors := validator.Validate(&req); errors != nil {
		response.ValidationError(w, errors)
		return
	}

	_, err := h.service.SubmitUnbanRequest(r.Context(), requesterType, requesterID, req.Message)
	if err != nil {
		switch err {
		case account.ErrAccountNotFound:
			response.NotFound(w, "Account not found")
		case account.ErrNotBanned:
			response.BadRequest(w, "Your account is not banned")
		case ErrUnbanAttemptsExceeded:
			response.Forbidden(w, "You have exceeded the maximum number of unban requests")
		case ErrUnbanRequestPending:
			response.Conflict(w, "You already have a pending unban request")
		default:
			response.InternalError(w)
		}
		return
	}

	response.Message(w, "Unban request submitted. An administrator will review it shortly.")
}

// ListMyUnbanRequests lists the current account's unban petitions
// GET /moderation/unban-requests/mine
func (h *Handler) ListMyUnbanRequests(w http.ResponseWriter, r *http.Request) {
	requesterID := middleware.GetAccountID(r.Context())

	requests, err := h.service.ListMyUnbanRequests(r.Context(), requesterID)
	if err != nil {
		response.InternalError(w)
		return
	}

	response.OK(w, requests)
}
