package account

import "errors"

var (
	ErrAccountNotFound    = errors.New("account not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrInvalidAccountType = errors.New("invalid account type")
	ErrNotBanned          = errors.New("account is not banned")
)
