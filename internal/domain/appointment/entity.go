package appointment

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Status represents appointment lifecycle state
type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// Appointment represents a consultation between a user and a doctor
type Appointment struct {
	ID           uuid.UUID      `db:"id" json:"id"`
	UserID       uuid.UUID      `db:"user_id" json:"user_id"`
	DoctorID     uuid.UUID      `db:"doctor_id" json:"doctor_id"`
	ScheduledAt  time.Time      `db:"scheduled_at" json:"scheduled_at"`
	Status       Status         `db:"status" json:"status"`
	CancelReason sql.NullString `db:"cancel_reason" json:"cancel_reason,omitempty"`
	Notes        string         `db:"notes" json:"notes,omitempty"`
	CreatedAt    time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at" json:"updated_at"`
}

// IsActive reports whether the appointment still counts against schedules
func (a *Appointment) IsActive() bool {
	return a.Status == StatusScheduled
}
