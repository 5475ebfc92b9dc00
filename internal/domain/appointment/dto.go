package appointment

import (
	"time"

	"github.com/google/uuid"
)

// BookRequest for booking an appointment with a doctor
type BookRequest struct {
	DoctorID    uuid.UUID `json:"doctor_id" validate:"required"`
	ScheduledAt time.Time `json:"scheduled_at" validate:"required"`
	Notes       string    `json:"notes,omitempty" validate:"max=1000"`
}

// CancelRequest carries an optional cancellation reason
type CancelRequest struct {
	Reason string `json:"reason,omitempty" validate:"max=500"`
}
