package auth

import "errors"

var (
	ErrEmailAlreadyExists = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidAccountType = errors.New("invalid account type, must be 'user' or 'doctor'")
	ErrAccountNotFound    = errors.New("account not found")
)
