package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/vetlink/vetlink-api/internal/domain/account"
)

// Service handles appointment business logic
type Service struct {
	repo     Repository
	accounts account.Repository
}

// NewService creates appointment service
func NewService(repo Repository, accounts account.Repository) *Service {
	return &Service{repo: repo, accounts: accounts}
}

// Book schedules an appointment between the calling user and a doctor.
// The doctor must exist, be available and not banned.
func (s *Service) Book(ctx context.Context, userID uuid.UUID, req *BookRequest) (*Appointment, error) {
	if !req.ScheduledAt.After(time.Now()) {
		return nil, ErrScheduledInPast
	}

	doctor, err := s.accounts.GetByTypeAndID(ctx, account.TypeDoctor, req.DoctorID)
	if err != nil {
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}
	if doctor.IsBanned || !doctor.IsAvailable {
		return nil, ErrDoctorUnavailable
	}

	now := time.Now()
	appt := &Appointment{
		ID:          uuid.New(),
		UserID:      userID,
		DoctorID:    req.DoctorID,
		ScheduledAt: req.ScheduledAt,
		Status:      StatusScheduled,
		Notes:       req.Notes,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, appt); err != nil {
		return nil, err
	}

	return appt, nil
}

// ListMine returns the account's appointments, newest first
func (s *Service) ListMine(ctx context.Context, accountType account.Type, accountID uuid.UUID, limit, offset int) ([]*Appointment, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.ListByAccount(ctx, accountType, accountID, limit, offset)
}

// Cancel cancels a scheduled appointment. Either participant may cancel.
func (s *Service) Cancel(ctx context.Context, accountID, appointmentID uuid.UUID, reason string) (*Appointment, error) {
	appt, err := s.repo.GetByID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if appt == nil {
		return nil, ErrAppointmentNotFound
	}
	if appt.UserID != accountID && appt.DoctorID != accountID {
		return nil, ErrNotOwner
	}

	cancelled, err := s.repo.Cancel(ctx, appointmentID, reason)
	if err != nil {
		return nil, err
	}
	if cancelled == nil {
		return nil, ErrAlreadyFinished
	}
	return cancelled, nil
}

// Complete marks a scheduled appointment as completed. Doctor side only.
func (s *Service) Complete(ctx context.Context, doctorID, appointmentID uuid.UUID) (*Appointment, error) {
	appt, err := s.repo.GetByID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if appt == nil {
		return nil, ErrAppointmentNotFound
	}
	if appt.DoctorID != doctorID {
		return nil, ErrNotOwner
	}

	completed, err := s.repo.Complete(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if completed == nil {
		return nil, ErrAlreadyFinished
	}
	return completed, nil
}
