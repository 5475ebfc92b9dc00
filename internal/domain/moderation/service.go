package moderation

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/vetlink/vetlink-api/internal/domain/account"
)

// Notifier pushes a banned event to a connected client so a live session
// can be forced to log out. Delivery is best-effort, at most once; a
// failure never rolls back the moderation state change.
type Notifier interface {
	NotifyBanned(ctx context.Context, accountID uuid.UUID, accountType account.Type, message string) error
}

// AppointmentStore is the slice of the appointment domain moderation
// consumes: bulk cancellation on ban and cascade deletion with the account.
type AppointmentStore interface {
	CancelAllActiveFor(ctx context.Context, accountID uuid.UUID, accountType account.Type, reason string) (int64, error)
	DeleteAllFor(ctx context.Context, accountID uuid.UUID) (int64, error)
}

// Service handles ban/unban, report and unban-request logic
type Service struct {
	reports      ReportRepository
	requests     UnbanRequestRepository
	accounts     account.Repository
	appointments AppointmentStore
	notifier     Notifier
}

// NewService creates moderation service
func NewService(
	reports ReportRepository,
	requests UnbanRequestRepository,
	accounts account.Repository,
	appointments AppointmentStore,
	notifier Notifier,
) *Service {
	return &Service{
		reports:      reports,
		requests:     requests,
		accounts:     accounts,
		appointments: appointments,
		notifier:     notifier,
	}
}

// BanParams are the inputs to a ban transition. ModeratorID is always an
// explicit parameter, never ambient state.
type BanParams struct {
	AccountID           uuid.UUID
	AccountType         account.Type
	Duration            string
	Reason              string
	ModeratorID         uuid.UUID
	CascadeAppointments bool
}

// Ban applies a ban to an account. The account row is written in a single
// statement, so two racing bans end with exactly one complete field set
// (last write wins). Re-banning an already-banned account overwrites the
// previous ban. Appointment cancellation and the force-logout push are
// secondary effects: their failure is logged, never propagated.
func (s *Service) Ban(ctx context.Context, p BanParams) (*BanSnapshot, error) {
	dur, err := ParseBanDuration(p.Duration)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(p.Reason) == "" {
		return nil, ErrEmptyBanReason
	}

	acct, err := s.accounts.Ban(ctx, account.BanUpdate{
		ID:       p.AccountID,
		Type:     p.AccountType,
		Reason:   p.Reason,
		BannedBy: p.ModeratorID,
		UnbanAt:  dur.UnbanAt(time.Now()),
	})
	if err != nil {
		return nil, err
	}
	if acct == nil {
		return nil, account.ErrAccountNotFound
	}

	if p.CascadeAppointments {
		count, err := s.appointments.CancelAllActiveFor(ctx, acct.ID, acct.Type, "Account banned: "+p.Reason)
		if err != nil {
			log.Error().Err(err).
				Str("account_id", acct.ID.String()).
				Msg("Failed to cancel appointments for banned account")
		} else if count > 0 {
			log.Info().Int64("count", count).
				Str("account_id", acct.ID.String()).
				Msg("Cancelled appointments for banned account")
		}
	}

	s.notifyBanned(ctx, acct)

	log.Info().
		Str("account_id", acct.ID.String()).
		Str("account_type", string(acct.Type)).
		Str("duration", dur.String()).
		Str("moderator_id", p.ModeratorID.String()).
		Msg("Account banned")

	return banSnapshot(acct, dur.String()), nil
}

// Unban lifts a ban. banned_at and banned_by stay behind as the last-ban
// audit trail; the unban reason is recorded by the caller's audit log.
func (s *Service) Unban(ctx context.Context, accountType account.Type, accountID uuid.UUID, reason string, moderatorID uuid.UUID) (*BanSnapshot, error) {
	acct, err := s.accounts.Unban(ctx, accountType, accountID)
	if err != nil {
		return nil, err
	}
	if acct == nil {
		existing, err := s.accounts.GetByTypeAndID(ctx, accountType, accountID)
		if err != nil {
			return nil, err
		}
		if existing == nil {
			return nil, account.ErrAccountNotFound
		}
		return nil, account.ErrNotBanned
	}

	log.Info().
		Str("account_id", acct.ID.String()).
		Str("reason", reason).
		Str("moderator_id", moderatorID.String()).
		Msg("Account unbanned")

	return banSnapshot(acct, ""), nil
}

// GetBanStatus returns the current ban snapshot for an account
func (s *Service) GetBanStatus(ctx context.Context, accountType account.Type, accountID uuid.UUID) (*BanSnapshot, error) {
	acct, err := s.accounts.GetByTypeAndID(ctx, accountType, accountID)
	if err != nil {
		return nil, err
	}
	if acct == nil {
		return nil, account.ErrAccountNotFound
	}
	return banSnapshot(acct, ""), nil
}

// ListAccounts returns accounts for the admin console
func (s *Service) ListAccounts(ctx context.Context, filter *account.ListFilter) ([]*account.Account, int, error) {
	accounts, err := s.accounts.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.accounts.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return accounts, total, nil
}

// DeleteAccount destroys an account and cascades to its appointments.
// Appointments go first so a mid-way failure leaves the account intact
// rather than orphaning its bookings.
func (s *Service) DeleteAccount(ctx context.Context, accountType account.Type, accountID uuid.UUID, moderatorID uuid.UUID) error {
	acct, err := s.accounts.GetByTypeAndID(ctx, accountType, accountID)
	if err != nil {
		return err
	}
	if acct == nil {
		return account.ErrAccountNotFound
	}

	count, err := s.appointments.DeleteAllFor(ctx, acct.ID)
	if err != nil {
		return err
	}

	if err := s.accounts.Delete(ctx, acct.ID); err != nil {
		return err
	}

	log.Info().
		Str("account_id", acct.ID.String()).
		Int64("appointments_deleted", count).
		Str("moderator_id", moderatorID.String()).
		Msg("Account deleted")

	return nil
}

func (s *Service) notifyBanned(ctx context.Context, acct *account.Account) {
	if s.notifier == nil {
		return
	}
	message := "Your account has been banned: " + acct.BanReason
	if err := s.notifier.NotifyBanned(ctx, acct.ID, acct.Type, message); err != nil {
		log.Warn().Err(err).
			Str("account_id", acct.ID.String()).
			Msg("Failed to deliver ban notification")
	}
}
