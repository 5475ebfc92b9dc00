package moderation

import (
	"time"

	"github.com/google/uuid"

	"github.com/vetlink/vetlink-api/internal/domain/account"
)

// BanTarget selects which side of a report a ban is aimed at
type BanTarget string

const (
	BanTargetReported BanTarget = "reported"
	// BanTargetReporter exists as an anti-abuse measure for false reports
	BanTargetReporter BanTarget = "reporter"
)

// BanAccountRequest represents an admin ban request
type BanAccountRequest struct {
	AccountID   uuid.UUID `json:"account_id" validate:"required"`
	AccountType string    `json:"account_type" validate:"required,account_type"`
	Duration    string    `json:"duration" validate:"required,ban_duration"`
	Reason      string    `json:"reason" validate:"required,min=3,max=500"`
	// CascadeAppointments defaults to true when omitted.
	CascadeAppointments *bool `json:"cascade_appointments,omitempty"`
}

// UnbanAccountRequest represents an admin unban request
type UnbanAccountRequest struct {
	AccountID   uuid.UUID `json:"account_id" validate:"required"`
	AccountType string    `json:"account_type" validate:"required,account_type"`
	Reason      string    `json:"reason" validate:"required,max=500"`
}

// BanSnapshot echoes the ban fields after a ban or unban transition
type BanSnapshot struct {
	AccountID            uuid.UUID  `json:"account_id"`
	AccountType          string     `json:"account_type"`
	Name                 string     `json:"name"`
	Email                string     `json:"email"`
	IsBanned             bool       `json:"is_banned"`
	BanDuration          string     `json:"ban_duration,omitempty"`
	BanReason            string     `json:"ban_reason"`
	BannedAt             *time.Time `json:"banned_at,omitempty"`
	UnbanAt              *time.Time `json:"unban_at,omitempty"`
	UnbanRequestAttempts int        `json:"unban_request_attempts"`
}

// CreateReportRequest represents a report submission
type CreateReportRequest struct {
	ReportedType  string     `json:"reported_type" validate:"required,account_type"`
	ReportedID    uuid.UUID  `json:"reported_id" validate:"required"`
	AppointmentID *uuid.UUID `json:"appointment_id,omitempty"`
	Reason        string     `json:"reason" validate:"required,oneof=harassment fake_profile spam no_show medical_malpractice inappropriate_behavior other"`
	Description   string     `json:"description,omitempty" validate:"max=2000"`
	Evidence      []string   `json:"evidence,omitempty" validate:"max=10,dive,url"`
}

// UpdateReportStatusRequest represents an admin status decision
type UpdateReportStatusRequest struct {
	Status      string `json:"status" validate:"required,oneof=pending under_review resolved dismissed"`
	ActionTaken string `json:"action_taken,omitempty" validate:"omitempty,oneof=none warning temporary_ban permanent_ban account_suspended"`
	AdminNotes  string `json:"admin_notes,omitempty" validate:"max=2000"`
}

// ReportIDsRequest carries a bulk id list for read/trash/restore/delete
type ReportIDsRequest struct {
	IDs []uuid.UUID `json:"ids" validate:"required,min=1,max=100"`
}

// BanFromReportRequest bans the reported account (or the reporter, for
// false reports) straight from a report
type BanFromReportRequest struct {
	Target   string `json:"target" validate:"required,oneof=reported reporter"`
	Duration string `json:"duration" validate:"required,ban_duration"`
	Reason   string `json:"reason" validate:"required,min=3,max=500"`
}

// CreateUnbanRequestRequest represents a banned account's petition
type CreateUnbanRequestRequest struct {
	Message string `json:"message" validate:"required,min=10,max=1000"`
}

// DecideUnbanRequestRequest represents the admin decision on a petition
type DecideUnbanRequestRequest struct {
	Action        string `json:"action" validate:"required,oneof=approve deny"`
	AdminResponse string `json:"admin_response,omitempty" validate:"max=1000"`
}

func banSnapshot(acct *account.Account, duration string) *BanSnapshot {
	snap := &BanSnapshot{
		AccountID:            acct.ID,
		AccountType:          string(acct.Type),
		Name:                 acct.Name,
		Email:                acct.Email,
		IsBanned:             acct.IsBanned,
		BanDuration:          duration,
		BanReason:            acct.BanReason,
		UnbanRequestAttempts: acct.UnbanRequestAttempts,
	}
	if acct.BannedAt.Valid {
		t := acct.BannedAt.Time
		snap.BannedAt = &t
	}
	if acct.UnbanAt.Valid {
		t := acct.UnbanAt.Time
		snap.UnbanAt = &t
	}
	return snap
}
