package appointment

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/vetlink/vetlink-api/internal/domain/account"
)

const appointmentColumns = `id, user_id, doctor_id, scheduled_at, status, cancel_reason, notes, created_at, updated_at`

// Repository defines appointment data access interface
type Repository interface {
	Create(ctx context.Context, appt *Appointment) error
	GetByID(ctx context.Context, id uuid.UUID) (*Appointment, error)
	ListByAccount(ctx context.Context, accountType account.Type, accountID uuid.UUID, limit, offset int) ([]*Appointment, error)
	Cancel(ctx context.Context, id uuid.UUID, reason string) (*Appointment, error)
	Complete(ctx context.Context, id uuid.UUID) (*Appointment, error)

	// CancelAllActiveFor cancels every scheduled appointment involving the
	// account and returns how many were cancelled.
	CancelAllActiveFor(ctx context.Context, accountID uuid.UUID, accountType account.Type, reason string) (int64, error)

	// DeleteAllFor removes every appointment involving the account,
	// regardless of which side it sits on.
	DeleteAllFor(ctx context.Context, accountID uuid.UUID) (int64, error)
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates appointment repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, appt *Appointment) error {
	query := `
		INSERT INTO appointments (id, user_id, doctor_id, scheduled_at, status, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.db.ExecContext(ctx, query,
		appt.ID,
		appt.UserID,
		appt.DoctorID,
		appt.ScheduledAt,
		appt.Status,
		appt.Notes,
		appt.CreatedAt,
		appt.UpdatedAt,
	)
	return err
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	query := `SELECT ` + appointmentColumns + ` FROM appointments WHERE id = $1`
	var appt Appointment
	err := r.db.GetContext(ctx, &appt, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &appt, nil
}

func (r *repository) ListByAccount(ctx context.Context, accountType account.Type, accountID uuid.UUID, limit, offset int) ([]*Appointment, error) {
	column := `user_id`
	if accountType == account.TypeDoctor {
		column = `doctor_id`
	}
	query := `SELECT ` + appointmentColumns + ` FROM appointments WHERE ` + column + ` = $1
		ORDER BY scheduled_at DESC LIMIT $2 OFFSET $3`

	appointments := []*Appointment{}
	err := r.db.SelectContext(ctx, &appointments, query, accountID, limit, offset)
	return appointments, err
}

func (r *repository) Cancel(ctx context.Context, id uuid.UUID, reason string) (*Appointment, error) {
	query := `
		UPDATE appointments
		SET status = 'cancelled', cancel_reason = $2, updated_at = NOW()
		WHERE id = $1 AND status = 'scheduled'
		RETURNING ` + appointmentColumns
	var appt Appointment
	err := r.db.GetContext(ctx, &appt, query, id, sql.NullString{String: reason, Valid: reason != ""})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &appt, nil
}

func (r *repository) Complete(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	query := `
		UPDATE appointments
		SET status = 'completed', updated_at = NOW()
		WHERE id = $1 AND status = 'scheduled'
		RETURNING ` + appointmentColumns
	var appt Appointment
	err := r.db.GetContext(ctx, &appt, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &appt, nil
}

func (r *repository) CancelAllActiveFor(ctx context.Context, accountID uuid.UUID, accountType account.Type, reason string) (int64, error) {
	column := `user_id`
	if accountType == account.TypeDoctor {
		column = `doctor_id`
	}
	query := `
		UPDATE appointments
		SET status = 'cancelled', cancel_reason = $2, updated_at = NOW()
		WHERE ` + column + ` = $1 AND status = 'scheduled'`

	result, err := r.db.ExecContext(ctx, query, accountID, sql.NullString{String: reason, Valid: reason != ""})
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *repository) DeleteAllFor(ctx context.Context, accountID uuid.UUID) (int64, error) {
	query := `DELETE FROM appointments WHERE user_id = $1 OR doctor_id = $1`
	result, err := r.db.ExecContext(ctx, query, accountID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
