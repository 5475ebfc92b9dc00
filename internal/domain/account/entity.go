package account

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Type discriminates the two account kinds sharing the moderation shape
type Type string

const (
	TypeUser   Type = "user"
	TypeDoctor Type = "doctor"
)

// ParseType validates an account type string
func ParseType(s string) (Type, error) {
	switch Type(s) {
	case TypeUser, TypeDoctor:
		return Type(s), nil
	}
	return "", ErrInvalidAccountType
}

// Account represents a user or doctor record (matches accounts table)
type Account struct {
	ID           uuid.UUID `db:"id"`
	Type         Type      `db:"type"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	Name         string    `db:"name"`

	// Doctor-specific
	Specialty   sql.NullString `db:"specialty"`
	IsAvailable bool           `db:"is_available"`

	// Ban state. Invariant: is_banned=false implies ban_reason='' and
	// unban_at IS NULL; is_banned=true implies ban_reason non-empty.
	IsBanned             bool          `db:"is_banned"`
	BanReason            string        `db:"ban_reason"`
	BannedAt             sql.NullTime  `db:"banned_at"`
	BannedBy             uuid.NullUUID `db:"banned_by"`
	UnbanAt              sql.NullTime  `db:"unban_at"`
	UnbanRequestAttempts int           `db:"unban_request_attempts"`

	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// IsDoctor returns true for doctor accounts
func (a *Account) IsDoctor() bool {
	return a.Type == TypeDoctor
}

// IsPermanentlyBanned returns true when banned with no scheduled expiry
func (a *Account) IsPermanentlyBanned() bool {
	return a.IsBanned && !a.UnbanAt.Valid
}

// CanRequestUnban reports whether the account may file another unban request
func (a *Account) CanRequestUnban() bool {
	return a.IsBanned && a.UnbanRequestAttempts < MaxUnbanRequestAttempts
}

// MaxUnbanRequestAttempts caps unban petitions per ban
const MaxUnbanRequestAttempts = 3
