package appointment

import "errors"

var (
	ErrAppointmentNotFound = errors.New("appointment not found")
	ErrDoctorNotFound      = errors.New("doctor not found")
	ErrDoctorUnavailable   = errors.New("doctor is not available for booking")
	ErrNotOwner            = errors.New("appointment belongs to another account")
	ErrAlreadyFinished     = errors.New("appointment is already completed or cancelled")
	ErrScheduledInPast     = errors.New("appointment must be scheduled in the future")
)
