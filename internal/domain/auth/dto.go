package auth

import (
	"time"

	"github.com/google/uuid"

	"github.com/vetlink/vetlink-api/internal/domain/account"
)

// RegisterRequest for account registration
type RegisterRequest struct {
	Type      string `json:"type" validate:"required,account_type"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8,max=72"`
	Name      string `json:"name" validate:"required,min=2,max=100"`
	Specialty string `json:"specialty,omitempty" validate:"omitempty,max=100"`
}

// LoginRequest for account login
type LoginRequest struct {
	Type     string `json:"type" validate:"required,account_type"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// TokensResponse carries the issued access token
type TokensResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

// AccountResponse is the public account representation. Ban fields are
// included so a banned account can see why it is locked out.
type AccountResponse struct {
	ID                   uuid.UUID  `json:"id"`
	Type                 string     `json:"type"`
	Email                string     `json:"email"`
	Name                 string     `json:"name"`
	Specialty            string     `json:"specialty,omitempty"`
	IsAvailable          bool       `json:"is_available,omitempty"`
	IsBanned             bool       `json:"is_banned"`
	BanReason            string     `json:"ban_reason,omitempty"`
	BannedAt             *time.Time `json:"banned_at,omitempty"`
	UnbanAt              *time.Time `json:"unban_at,omitempty"`
	UnbanRequestAttempts int        `json:"unban_request_attempts"`
	CreatedAt            time.Time  `json:"created_at"`
}

// AuthResponse combines account info with tokens
type AuthResponse struct {
	Account AccountResponse `json:"account"`
	Tokens  TokensResponse  `json:"tokens"`
}

// NewAccountResponse converts entity to response
func NewAccountResponse(acct *account.Account) AccountResponse {
	resp := AccountResponse{
		ID:                   acct.ID,
		Type:                 string(acct.Type),
		Email:                acct.Email,
		Name:                 acct.Name,
		IsAvailable:          acct.IsAvailable,
		IsBanned:             acct.IsBanned,
		BanReason:            acct.BanReason,
		UnbanRequestAttempts: acct.UnbanRequestAttempts,
		CreatedAt:            acct.CreatedAt,
	}
	if acct.Specialty.Valid {
		resp.Specialty = acct.Specialty.String
	}
	if acct.IsBanned {
		if acct.BannedAt.Valid {
			t := acct.BannedAt.Time
			resp.BannedAt = &t
		}
		if acct.UnbanAt.Valid {
			t := acct.UnbanAt.Time
			resp.UnbanAt = &t
		}
	}
	return resp
}
