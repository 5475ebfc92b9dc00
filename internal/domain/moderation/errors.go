package moderation

import "errors"

var (
	// Ban errors
	ErrInvalidBanDuration = errors.New("invalid ban duration")
	ErrEmptyBanReason     = errors.New("ban reason is required")

	// Report errors
	ErrCannotReportSelf = errors.New("cannot report yourself")
	ErrReportNotFound   = errors.New("report not found")
	ErrDuplicateReport  = errors.New("an open report for this account already exists")
	ErrInvalidReason    = errors.New("invalid report reason")

	// Unban request errors
	ErrUnbanRequestNotFound  = errors.New("unban request not found")
	ErrUnbanRequestProcessed = errors.New("unban request already processed")
	ErrUnbanRequestPending   = errors.New("a pending unban request already exists")
	ErrUnbanAttemptsExceeded = errors.New("exceeded maximum unban request attempts")
)
