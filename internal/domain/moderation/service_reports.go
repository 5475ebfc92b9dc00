package moderation

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/vetlink/vetlink-api/internal/domain/account"
)

// SubmitReportParams are the inputs to a report submission
type SubmitReportParams struct {
	ReporterType  account.Type
	ReporterID    uuid.UUID
	ReportedType  account.Type
	ReportedID    uuid.UUID
	AppointmentID *uuid.UUID
	Reason        ReportReason
	Description   string
	Evidence      []string
}

// SubmitReport files a report. Both accounts must exist, self-reports are
// rejected, and at most one open report may exist per (reporter, reported)
// pair; the duplicate check runs at submit time, not as a DB constraint.
func (s *Service) SubmitReport(ctx context.Context, p SubmitReportParams) (*Report, error) {
	if p.ReporterID == p.ReportedID {
		return nil, ErrCannotReportSelf
	}

	reporter, err := s.accounts.GetByTypeAndID(ctx, p.ReporterType, p.ReporterID)
	if err != nil {
		return nil, err
	}
	if reporter == nil {
		return nil, account.ErrAccountNotFound
	}

	reported, err := s.accounts.GetByTypeAndID(ctx, p.ReportedType, p.ReportedID)
	if err != nil {
		return nil, err
	}
	if reported == nil {
		return nil, account.ErrAccountNotFound
	}

	open, err := s.reports.HasOpenReport(ctx, p.ReporterID, p.ReportedID)
	if err != nil {
		return nil, err
	}
	if open {
		return nil, ErrDuplicateReport
	}

	now := time.Now()
	report := &Report{
		ID:           uuid.New(),
		ReporterType: p.ReporterType,
		ReporterID:   p.ReporterID,
		ReportedType: p.ReportedType,
		ReportedID:   p.ReportedID,
		Reason:       p.Reason,
		Description:  p.Description,
		Evidence:     pq.StringArray(p.Evidence),
		Status:       ReportStatusPending,
		ActionTaken:  ActionNone,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if p.AppointmentID != nil {
		report.AppointmentID = uuid.NullUUID{UUID: *p.AppointmentID, Valid: true}
	}

	if err := s.reports.Create(ctx, report); err != nil {
		return nil, err
	}

	return report, nil
}

// GetReport returns a report by id
func (s *Service) GetReport(ctx context.Context, id uuid.UUID) (*Report, error) {
	report, err := s.reports.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if report == nil {
		return nil, ErrReportNotFound
	}
	return report, nil
}

// ListReports returns reports for the admin console
func (s *Service) ListReports(ctx context.Context, filter *ReportFilter) ([]*Report, int, error) {
	reports, err := s.reports.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.reports.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return reports, total, nil
}

// ListMyReports returns reports filed by the given account
func (s *Service) ListMyReports(ctx context.Context, reporterID uuid.UUID) ([]*Report, error) {
	return s.reports.ListByReporter(ctx, reporterID)
}

// UpdateReportStatus records an admin decision. Any status may follow any
// other; only the final decision matters. An update without an action
// keeps the action already on the report.
func (s *Service) UpdateReportStatus(ctx context.Context, id uuid.UUID, upd StatusUpdate) (*Report, error) {
	report, err := s.reports.UpdateStatus(ctx, id, upd)
	if err != nil {
		return nil, err
	}
	if report == nil {
		return nil, ErrReportNotFound
	}
	return report, nil
}

// MarkReportsRead flags reports as read. Missing ids are no-ops.
func (s *Service) MarkReportsRead(ctx context.Context, ids []uuid.UUID) (int64, error) {
	return s.reports.MarkRead(ctx, ids)
}

// TrashReports soft-deletes reports; reversible via RestoreReports
func (s *Service) TrashReports(ctx context.Context, ids []uuid.UUID) (int64, error) {
	return s.reports.SetTrashed(ctx, ids, true)
}

// RestoreReports brings trashed reports back; all other fields untouched
func (s *Service) RestoreReports(ctx context.Context, ids []uuid.UUID) (int64, error) {
	return s.reports.SetTrashed(ctx, ids, false)
}

// DeleteReportsPermanently hard-deletes reports. Irreversible.
func (s *Service) DeleteReportsPermanently(ctx context.Context, ids []uuid.UUID) (int64, error) {
	return s.reports.DeleteMany(ctx, ids)
}

// BanFromReport bans the reported account (or the reporter, when a report
// is deemed false) straight from a report. Unlike the plain Ban entry
// point callers may configure, this path always cancels the target's
// active appointments and stamps the report resolved.
func (s *Service) BanFromReport(ctx context.Context, reportID uuid.UUID, target BanTarget, duration, reason string, moderatorID uuid.UUID) (*BanSnapshot, error) {
	report, err := s.reports.GetByID(ctx, reportID)
	if err != nil {
		return nil, err
	}
	if report == nil {
		return nil, ErrReportNotFound
	}

	subjectType, subjectID := reportSubject(report, target)

	snap, err := s.Ban(ctx, BanParams{
		AccountID:           subjectID,
		AccountType:         subjectType,
		Duration:            duration,
		Reason:              reason,
		ModeratorID:         moderatorID,
		CascadeAppointments: true,
	})
	if err != nil {
		return nil, err
	}

	action := ActionTemporaryBan
	if snap.UnbanAt == nil {
		action = ActionPermanentBan
	}

	// The ban has already been applied; a failure here leaves the report
	// unstamped but is still surfaced to the admin.
	if _, err := s.reports.UpdateStatus(ctx, reportID, StatusUpdate{
		Status:      ReportStatusResolved,
		ActionTaken: action,
		AdminNotes:  reason,
		ReviewedBy:  moderatorID,
	}); err != nil {
		return snap, err
	}

	return snap, nil
}
