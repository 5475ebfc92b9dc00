package moderation

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/vetlink/vetlink-api/internal/domain/account"
)

// ReportReason represents the category of a report
type ReportReason string

const (
	ReasonHarassment            ReportReason = "harassment"
	ReasonFakeProfile           ReportReason = "fake_profile"
	ReasonSpam                  ReportReason = "spam"
	ReasonNoShow                ReportReason = "no_show"
	ReasonMedicalMalpractice    ReportReason = "medical_malpractice"
	ReasonInappropriateBehavior ReportReason = "inappropriate_behavior"
	ReasonOther                 ReportReason = "other"
)

// ReportStatus represents the status of a report.
// Transitions are deliberately free: any status is reachable from any
// other, the record only needs to carry the final decision.
type ReportStatus string

const (
	ReportStatusPending     ReportStatus = "pending"
	ReportStatusUnderReview ReportStatus = "under_review"
	ReportStatusResolved    ReportStatus = "resolved"
	ReportStatusDismissed   ReportStatus = "dismissed"
)

// IsOpen reports whether the status blocks a new report for the same pair
func (s ReportStatus) IsOpen() bool {
	return s == ReportStatusPending || s == ReportStatusUnderReview
}

// ActionTaken records what the admin decided to do about a report
type ActionTaken string

const (
	ActionNone             ActionTaken = "none"
	ActionWarning          ActionTaken = "warning"
	ActionTemporaryBan     ActionTaken = "temporary_ban"
	ActionPermanentBan     ActionTaken = "permanent_ban"
	ActionAccountSuspended ActionTaken = "account_suspended"
)

// Report represents a complaint filed by one account against another
type Report struct {
	ID            uuid.UUID     `db:"id" json:"id"`
	ReporterType  account.Type  `db:"reporter_type" json:"reporter_type"`
	ReporterID    uuid.UUID     `db:"reporter_id" json:"reporter_id"`
	ReportedType  account.Type  `db:"reported_type" json:"reported_type"`
	ReportedID    uuid.UUID     `db:"reported_id" json:"reported_id"`
	AppointmentID uuid.NullUUID `db:"appointment_id" json:"appointment_id,omitempty"`

	Reason      ReportReason   `db:"reason" json:"reason"`
	Description string         `db:"description" json:"description"`
	Evidence    pq.StringArray `db:"evidence" json:"evidence"`

	Status      ReportStatus   `db:"status" json:"status"`
	ActionTaken ActionTaken    `db:"action_taken" json:"action_taken"`
	AdminNotes  sql.NullString `db:"admin_notes" json:"admin_notes,omitempty"`
	ReviewedBy  uuid.NullUUID  `db:"reviewed_by" json:"reviewed_by,omitempty"`
	ReviewedAt  sql.NullTime   `db:"reviewed_at" json:"reviewed_at,omitempty"`

	// Independent flags: trashing is a soft-delete, not a status change.
	IsRead    bool `db:"is_read" json:"is_read"`
	IsTrashed bool `db:"is_trashed" json:"is_trashed"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// UnbanRequestStatus represents the status of an unban petition
type UnbanRequestStatus string

const (
	UnbanRequestPending  UnbanRequestStatus = "pending"
	UnbanRequestApproved UnbanRequestStatus = "approved"
	UnbanRequestDenied   UnbanRequestStatus = "denied"
)

// UnbanRequest represents a banned account's petition to be reinstated.
// Requester name, email and ban reason are snapshotted at submit time.
type UnbanRequest struct {
	ID             uuid.UUID    `db:"id" json:"id"`
	RequesterType  account.Type `db:"requester_type" json:"requester_type"`
	RequesterID    uuid.UUID    `db:"requester_id" json:"requester_id"`
	RequesterName  string       `db:"requester_name" json:"requester_name"`
	RequesterEmail string       `db:"requester_email" json:"requester_email"`
	BanReason      string       `db:"ban_reason" json:"ban_reason"`
	RequestMessage string       `db:"request_message" json:"request_message"`

	Status        UnbanRequestStatus `db:"status" json:"status"`
	AdminResponse sql.NullString     `db:"admin_response" json:"admin_response,omitempty"`
	ReviewedBy    uuid.NullUUID      `db:"reviewed_by" json:"reviewed_by,omitempty"`
	ReviewedAt    sql.NullTime       `db:"reviewed_at" json:"reviewed_at,omitempty"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
