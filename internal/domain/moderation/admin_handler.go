package moderation

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/vetlink/vetlink-api/internal/domain/account"
	"github.com/vetlink/vetlink-api/internal/domain/admin"
	"github.com/vetlink/vetlink-api/internal/pkg/response"
	"github.com/vetlink/vetlink-api/internal/pkg/validator"
)

// AuditLogger records admin actions for the audit trail
type AuditLogger interface {
	LogActionWithReason(ctx context.Context, adminID uuid.UUID, action, entityType string, entityID uuid.UUID, reason string, oldValue, newValue interface{})
}

// AdminHandler handles admin-side moderation HTTP requests
type AdminHandler struct {
	service *Service
	audit   AuditLogger
}

// NewAdminHandler creates admin moderation handler
func NewAdminHandler(service *Service, audit AuditLogger) *AdminHandler {
	return &AdminHandler{service: service, audit: audit}
}

// ListAccounts lists accounts with optional type/banned filters
// GET /admin/moderation/accounts
func (h *AdminHandler) ListAccounts(w http.ResponseWriter, r *http.Request) {
	filter := &account.ListFilter{
		Limit:  parseIntQuery(r, "limit", 20),
		Offset: parseIntQuery(r, "offset", 0),
	}
	if t := r.URL.Query().Get("type"); t != "" {
		accountType, err := account.ParseType(t)
		if err != nil {
			response.BadRequest(w, "Invalid account type")
			return
		}
		filter.Type = accountType
	}
	if b := r.URL.Query().Get("banned"); b != "" {
		banned := b == "true"
		filter.Banned = &banned
	}

	accounts, total, err := h.service.ListAccounts(r.Context(), filter)
	if err != nil {
		response.InternalError(w)
		return
	}

	response.WithMeta(w, accounts, response.Meta{
		Total:  total,
		Limit:  filter.Limit,
		Offset: filter.Offset,
	})
}

// BanAccount bans a user or doctor account
// POST /admin/moderation/accounts/ban
func (h *AdminHandler) BanAccount(w http.ResponseWriter, r *http.Request) {
	adminID := admin.GetAdminID(r.Context())

	var req BanAccountRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if errors := validator.Validate(&req); errors != nil {
		response.ValidationError(w, errors)
		return
	}

	cascade := true
	if req.CascadeAppointments != nil {
		cascade = *req.CascadeAppointments
	}

	snap, err := h.service.Ban(r.Context(), BanParams{
		AccountID:           req.AccountID,
		AccountType:         account.Type(req.AccountType),
		Duration:            req.Duration,
		Reason:              req.Reason,
		ModeratorID:         adminID,
		CascadeAppointments: cascade,
	})
	if err != nil {
		switch err {
		case account.ErrAccountNotFound:
			response.NotFound(w, "Account not found")
		case ErrInvalidBanDuration:
			response.BadRequest(w, "Invalid ban duration")
		case ErrEmptyBanReason:
			response.BadRequest(w, "Ban reason is required")
		default:
			response.InternalError(w)
		}
		return
	}

	h.audit.LogActionWithReason(r.Context(), adminID, "ban_account", req.AccountType, req.AccountID, req.Reason, nil, snap)

	response.OK(w, snap)
}

// UnbanAccount lifts a ban from a user or doctor account
// POST /admin/moderation/accounts/unban
func (h *AdminHandler) UnbanAccount(w http.ResponseWriter, r *http.Request) {
	adminID := admin.GetAdminID(r.Context())

	var req UnbanAccountRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if errors := validator.Validate(&req); errors != nil {
		response.ValidationError(w, errors)
		return
	}

	snap, err := h.service.Unban(r.Context(), account.Type(req.AccountType), req.AccountID, req.Reason, adminID)
	if err != nil {
		switch err {
		case account.ErrAccountNotFound:
			response.NotFound(w, "Account not found")
		case account.ErrNotBanned:
			response.BadRequest(w, "Account is not banned")
		default:
			response.InternalError(w)
		}
		return
	}

	h.audit.LogActionWithReason(r.Context(), adminID, "unban_account", req.AccountType, req.AccountID, req.Reason, nil, snap)

	response.OK(w, snap)
}

// GetBanStatus returns the ban fields for a single account
// GET /admin/moderation/accounts/{type}/{id}/ban-status
func (h *AdminHandler) GetBanStatus(w http.ResponseWriter, r *http.Request) {
	accountType, err := account.ParseType(chi.URLParam(r, "type"))
	if err != nil {
		response.BadRequest(w, "Invalid account type")
		return
	}
	accountID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid account ID")
		return
	}

	snap, err := h.service.GetBanStatus(r.Context(), accountType, accountID)
	if err != nil {
		if err == account.ErrAccountNotFound {
			response.NotFound(w, "Account not found")
			return
		}
		response.InternalError(w)
		return
	}

	response.OK(w, snap)
}

// DeleteAccount permanently removes an account and its appointments
// DELETE /admin/moderation/accounts/{type}/{id}
func (h *AdminHandler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	adminID := admin.GetAdminID(r.Context())

	accountType, err := account.ParseType(chi.URLParam(r, "type"))
	if err != nil {
		response.BadRequest(w, "Invalid account type")
		return
	}
	accountID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid account ID")
		return
	}

	if err := h.service.DeleteAccount(r.Context(), accountType, accountID, adminID); err != nil {
		if err == account.ErrAccountNotFound {
			response.NotFound(w, "Account not found")
			return
		}
		response.InternalError(w)
		return
	}

	h.audit.LogActionWithReason(r.Context(), adminID, "delete_account", string(accountType), accountID, "", nil, nil)

	response.Message(w, "Account deleted")
}

// ListReports lists reports with optional status/trashed filters
// GET /admin/moderation/reports
func (h *AdminHandler) ListReports(w http.ResponseWriter, r *http.Request) {
	filter := &ReportFilter{
		Limit:  parseIntQuery(r, "limit", 20),
		Offset: parseIntQuery(r, "offset", 0),
	}
	if s := r.URL.Query().Get("status"); s != "" {
		filter.Status = ReportStatus(s)
	}
	if t := r.URL.Query().Get("trashed"); t != "" {
		trashed := t == "true"
		filter.Trashed = &trashed
	} else {
		// trashed reports stay out of the default listing
		trashed := false
		filter.Trashed = &trashed
	}
	if rid := r.URL.Query().Get("reported_id"); rid != "" {
		reportedID, err := uuid.Parse(rid)
		if err != nil {
			response.BadRequest(w, "Invalid reported_id")
			return
		}
		filter.ReportedID = reportedID
	}

	reports, total, err := h.service.ListReports(r.Context(), filter)
	if err != nil {
		response.InternalError(w)
		return
	}

	response.WithMeta(w, reports, response.Meta{
		Total:  total,
		Limit:  filter.Limit,
		Offset: filter.Offset,
	})
}

// GetReport returns a single report
// GET /admin/moderation/reports/{id}
func (h *AdminHandler) GetReport(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid report ID")
		return
	}

	report, err := h.service.GetReport(r.Context(), id)
	if err != nil {
		if err == ErrReportNotFound {
			response.NotFound(w, "Report not found")
			return
		}
		response.InternalError(w)
		return
	}

	response.OK(w, report)
}

// UpdateReportStatus applies an admin decision to a report
// PATCH /admin/moderation/reports/{id}/status
func (h *AdminHandler) UpdateReportStatus(w http.ResponseWriter, r *http.Request) {
	adminID := admin.GetAdminID(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid report ID")
		return
	}

	var req UpdateReportStatusRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if errors := validator.Validate(&req); errors != nil {
		response.ValidationError(w, errors)
		return
	}

	report, err := h.service.UpdateReportStatus(r.Context(), id, StatusUpdate{
		Status:      ReportStatus(req.Status),
		ActionTaken: ActionTaken(req.ActionTaken),
		AdminNotes:  req.AdminNotes,
		ReviewedBy:  adminID,
	})
	if err != nil {
		if err == ErrReportNotFound {
			response.NotFound(w, "Report not found")
			return
		}
		response.InternalError(w)
		return
	}

	h.audit.LogActionWithReason(r.Context(), adminID, "update_report_status", "report", id, req.AdminNotes, nil, report.Status)

	response.OK(w, report)
}

// MarkReportsRead marks a batch of reports as read
// POST /admin/moderation/reports/read
func (h *AdminHandler) MarkReportsRead(w http.ResponseWriter, r *http.Request) {
	h.bulkReportAction(w, r, "mark_reports_read", h.service.MarkReportsRead)
}

// TrashReports moves a batch of reports to the trash
// POST /admin/moderation/reports/trash
func (h *AdminHandler) TrashReports(w http.ResponseWriter, r *http.Request) {
	h.bulkReportAction(w, r, "trash_reports", h.service.TrashReports)
}

// RestoreReports restores a batch of reports from the trash
// POST /admin/moderation/reports/restore
func (h *AdminHandler) RestoreReports(w http.ResponseWriter, r *http.Request) {
	h.bulkReportAction(w, r, "restore_reports", h.service.RestoreReports)
}

// DeleteReportsPermanently removes a batch of reports for good
// POST /admin/moderation/reports/delete
func (h *AdminHandler) DeleteReportsPermanently(w http.ResponseWriter, r *http.Request) {
	h.bulkReportAction(w, r, "delete_reports", h.service.DeleteReportsPermanently)
}

func (h *AdminHandler) bulkReportAction(w http.ResponseWriter, r *http.Request, action string, fn func(context.Context, []uuid.UUID) (int64, error)) {
	adminID := admin.GetAdminID(r.Context())

	var req ReportIDsRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if errors := validator.Validate(&req); errors != nil {
		response.ValidationError(w, errors)
		return
	}

	affected, err := fn(r.Context(), req.IDs)
	if err != nil {
		response.InternalError(w)
		return
	}

	h.audit.LogActionWithReason(r.Context(), adminID, action, "report", uuid.Nil, "", nil, map[string]interface{}{"ids": req.IDs, "affected": affected})

	response.OK(w, map[string]int64{"affected": affected})
}

// BanFromReport bans the reported account (or the reporter) straight from
// a report and resolves the report in the same operation
// POST /admin/moderation/reports/{id}/ban
func (h *AdminHandler) BanFromReport(w http.ResponseWriter, r *http.Request) {
	adminID := admin.GetAdminID(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid report ID")
		return
	}

	var req BanFromReportRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if errors := validator.Validate(&req); errors != nil {
		response.ValidationError(w, errors)
		return
	}

	snap, err := h.service.BanFromReport(r.Context(), id, BanTarget(req.Target), req.Duration, req.Reason, adminID)
	if err != nil {
		switch err {
		case ErrReportNotFound:
			response.NotFound(w, "Report not found")
		case account.ErrAccountNotFound:
			response.NotFound(w, "Account not found")
		case ErrInvalidBanDuration:
			response.BadRequest(w, "Invalid ban duration")
		case ErrEmptyBanReason:
			response.BadRequest(w, "Ban reason is required")
		default:
			// the ban may have landed even if stamping the report failed
			if snap != nil {
				h.audit.LogActionWithReason(r.Context(), adminID, "ban_from_report", "report", id, req.Reason, nil, snap)
				response.OK(w, snap)
				return
			}
			response.InternalError(w)
		}
		return
	}

	h.audit.LogActionWithReason(r.Context(), adminID, "ban_from_report", "report", id, req.Reason, nil, snap)

	response.OK(w, snap)
}

// ListUnbanRequests lists unban petitions with an optional status filter
// GET /admin/moderation/unban-requests
func (h *AdminHandler) ListUnbanRequests(w http.ResponseWriter, r *http.Request) {
	filter := &UnbanRequestFilter{
		Limit:  parseIntQuery(r, "limit", 20),
		Offset: parseIntQuery(r, "offset", 0),
	}
	if s := r.URL.Query().Get("status"); s != "" {
		filter.Status = UnbanRequestStatus(s)
	}

	requests, total, err := h.service.ListUnbanRequests(r.Context(), filter)
	if err != nil {
		response.InternalError(w)
		return
	}

	response.WithMeta(w, requests, response.Meta{
		Total:  total,
		Limit:  filter.Limit,
		Offset: filter.Offset,
	})
}

// DecideUnbanRequest approves or denies an unban petition. Approval also
// lifts the ban.
// POST /admin/moderation/unban-requests/{id}/decide
func (h *AdminHandler) DecideUnbanRequest(w http.ResponseWriter, r *http.Request) {
	adminID := admin.GetAdminID(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid request ID")
		return
	}

	var req DecideUnbanRequestRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if errors := validator.Validate(&req); errors != nil {
		response.ValidationError(w, errors)
		return
	}

	decided, err := h.service.DecideUnbanRequest(r.Context(), id, req.Action == "approve", adminID, req.AdminResponse)
	if err != nil {
		switch err {
		case ErrUnbanRequestNotFound:
			response.NotFound(w, "Unban request not found")
		case ErrUnbanRequestProcessed:
			response.Conflict(w, "Unban request has already been processed")
		default:
			response.InternalError(w)
		}
		return
	}

	h.audit.LogActionWithReason(r.Context(), adminID, "decide_unban_request", "unban_request", id, req.AdminResponse, nil, decided.Status)

	response.OK(w, decided)
}

func parseIntQuery(r *http.Request, key string, def int) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return def
	}
	return n
}
