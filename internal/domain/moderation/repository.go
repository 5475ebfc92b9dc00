package moderation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/vetlink/vetlink-api/internal/domain/account"
)

// ReportFilter filters admin report listings
type ReportFilter struct {
	Status     ReportStatus
	Trashed    *bool
	ReportedID uuid.UUID
	Limit      int
	Offset     int
}

// StatusUpdate carries an admin decision applied to a report
type StatusUpdate struct {
	Status      ReportStatus
	ActionTaken ActionTaken
	AdminNotes  string
	ReviewedBy  uuid.UUID
}

// ReportRepository defines report data access interface
type ReportRepository interface {
	Create(ctx context.Context, report *Report) error
	GetByID(ctx context.Context, id uuid.UUID) (*Report, error)
	List(ctx context.Context, filter *ReportFilter) ([]*Report, error)
	Count(ctx context.Context, filter *ReportFilter) (int, error)
	ListByReporter(ctx context.Context, reporterID uuid.UUID) ([]*Report, error)
	// HasOpenReport checks for an existing report in an open status for
	// the exact (reporter, reported) pair.
	HasOpenReport(ctx context.Context, reporterID, reportedID uuid.UUID) (bool, error)
	// UpdateStatus stamps the decision and reviewer in one statement. An
	// empty ActionTaken keeps the previously recorded action. Returns nil
	// when the report does not exist.
	UpdateStatus(ctx context.Context, id uuid.UUID, upd StatusUpdate) (*Report, error)

	// Bulk operations. Missing ids are silently skipped; the count of
	// rows actually touched is returned.
	MarkRead(ctx context.Context, ids []uuid.UUID) (int64, error)
	SetTrashed(ctx context.Context, ids []uuid.UUID, trashed bool) (int64, error)
	DeleteMany(ctx context.Context, ids []uuid.UUID) (int64, error)
}

const reportColumns = `id, reporter_type, reporter_id, reported_type, reported_id, appointment_id,
	reason, description, evidence, status, action_taken, admin_notes, reviewed_by, reviewed_at,
	is_read, is_trashed, created_at, updated_at`

type reportRepository struct {
	db *sqlx.DB
}

// NewReportRepository creates new report repository
func NewReportRepository(db *sqlx.DB) ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) Create(ctx context.Context, report *Report) error {
	query := `
		INSERT INTO reports (
			id, reporter_type, reporter_id, reported_type, reported_id, appointment_id,
			reason, description, evidence, status, action_taken, is_read, is_trashed,
			created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15
		)
	`
	_, err := r.db.ExecContext(ctx, query,
		report.ID,
		report.ReporterType,
		report.ReporterID,
		report.ReportedType,
		report.ReportedID,
		report.AppointmentID,
		report.Reason,
		report.Description,
		report.Evidence,
		report.Status,
		report.ActionTaken,
		report.IsRead,
		report.IsTrashed,
		report.CreatedAt,
		report.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("report repository create: %w", err)
	}
	return nil
}

func (r *reportRepository) GetByID(ctx context.Context, id uuid.UUID) (*Report, error) {
	query := `SELECT ` + reportColumns + ` FROM reports WHERE id = $1`
	var report Report
	err := r.db.GetContext(ctx, &report, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &report, nil
}

func (r *reportRepository) List(ctx context.Context, filter *ReportFilter) ([]*Report, error) {
	query := `SELECT ` + reportColumns + ` FROM reports WHERE 1=1`
	args := []interface{}{}
	argPos := 1

	if filter != nil {
		if filter.Status != "" {
			query += fmt.Sprintf(` AND status = $%d`, argPos)
			args = append(args, filter.Status)
			argPos++
		}
		if filter.Trashed != nil {
			query += fmt.Sprintf(` AND is_trashed = $%d`, argPos)
			args = append(args, *filter.Trashed)
			argPos++
		}
		if filter.ReportedID != uuid.Nil {
			query += fmt.Sprintf(` AND reported_id = $%d`, argPos)
			args = append(args, filter.ReportedID)
			argPos++
		}
	}

	query += ` ORDER BY created_at DESC`

	if filter != nil && filter.Limit > 0 {
		query += fmt.Sprintf(` LIMIT $%d`, argPos)
		args = append(args, filter.Limit)
		argPos++
		if filter.Offset > 0 {
			query += fmt.Sprintf(` OFFSET $%d`, argPos)
			args = append(args, filter.Offset)
		}
	} else if filter == nil {
		query += ` LIMIT 50`
	}

	var reports []*Report
	err := r.db.SelectContext(ctx, &reports, query, args...)
	return reports, err
}

func (r *reportRepository) Count(ctx context.Context, filter *ReportFilter) (int, error) {
	query := `SELECT COUNT(*) FROM reports WHERE 1=1`
	args := []interface{}{}
	argPos := 1

	if filter != nil {
		if filter.Status != "" {
			query += fmt.Sprintf(` AND status = $%d`, argPos)
			args = append(args, filter.Status)
			argPos++
		}
		if filter.Trashed != nil {
			query += fmt.Sprintf(` AND is_trashed = $%d`, argPos)
			args = append(args, *filter.Trashed)
			argPos++
		}
		if filter.ReportedID != uuid.Nil {
			query += fmt.Sprintf(` AND reported_id = $%d`, argPos)
			args = append(args, filter.ReportedID)
		}
	}

	var count int
	err := r.db.GetContext(ctx, &count, query, args...)
	return count, err
}

func (r *reportRepository) ListByReporter(ctx context.Context, reporterID uuid.UUID) ([]*Report, error) {
	query := `SELECT ` + reportColumns + ` FROM reports WHERE reporter_id = $1 ORDER BY created_at DESC`
	var reports []*Report
	err := r.db.SelectContext(ctx, &reports, query, reporterID)
	return reports, err
}

func (r *reportRepository) HasOpenReport(ctx context.Context, reporterID, reportedID uuid.UUID) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM reports
			WHERE reporter_id = $1 AND reported_id = $2
			  AND status IN ($3, $4)
		)
	`
	var exists bool
	err := r.db.GetContext(ctx, &exists, query, reporterID, reportedID, ReportStatusPending, ReportStatusUnderReview)
	return exists, err
}

func (r *reportRepository) UpdateStatus(ctx context.Context, id uuid.UUID, upd StatusUpdate) (*Report, error) {
	query := `
		UPDATE reports
		SET status = $2,
		    action_taken = CASE WHEN $3 = '' THEN action_taken ELSE $3 END,
		    admin_notes = $4,
		    reviewed_by = $5,
		    reviewed_at = NOW(),
		    updated_at = NOW()
		WHERE id = $1
		RETURNING ` + reportColumns
	adminNotes := sql.NullString{String: upd.AdminNotes, Valid: upd.AdminNotes != ""}
	var report Report
	err := r.db.GetContext(ctx, &report, query, id, upd.Status, upd.ActionTaken, adminNotes, upd.ReviewedBy)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("report repository update status: %w", err)
	}
	return &report, nil
}

func (r *reportRepository) MarkRead(ctx context.Context, ids []uuid.UUID) (int64, error) {
	query := `UPDATE reports SET is_read = true, updated_at = NOW() WHERE id = ANY($1)`
	result, err := r.db.ExecContext(ctx, query, pq.Array(ids))
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *reportRepository) SetTrashed(ctx context.Context, ids []uuid.UUID, trashed bool) (int64, error) {
	query := `UPDATE reports SET is_trashed = $2, updated_at = NOW() WHERE id = ANY($1)`
	result, err := r.db.ExecContext(ctx, query, pq.Array(ids), trashed)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *reportRepository) DeleteMany(ctx context.Context, ids []uuid.UUID) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM reports WHERE id = ANY($1)`, pq.Array(ids))
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

// reportSubject resolves which side of a report a ban targets
func reportSubject(report *Report, target BanTarget) (account.Type, uuid.UUID) {
	if target == BanTargetReporter {
		return report.ReporterType, report.ReporterID
	}
	return report.ReportedType, report.ReportedID
}
