package moderation

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/vetlink/vetlink-api/internal/domain/account"
)

// SubmitUnbanRequest files an unban petition. Preconditions, first
// failure wins: account exists, account is banned, fewer than three
// attempts used, no pending request. The attempt is consumed at
// submission, not at approval, so denials still burn it.
func (s *Service) SubmitUnbanRequest(ctx context.Context, requesterType account.Type, requesterID uuid.UUID, message string) (*UnbanRequest, error) {
	acct, err := s.accounts.GetByTypeAndID(ctx, requesterType, requesterID)
	if err != nil {
		return nil, err
	}
	if acct == nil {
		return nil, account.ErrAccountNotFound
	}
	if !acct.IsBanned {
		return nil, account.ErrNotBanned
	}
	if acct.UnbanRequestAttempts >= account.MaxUnbanRequestAttempts {
		return nil, ErrUnbanAttemptsExceeded
	}

	pending, err := s.requests.HasPending(ctx, requesterID)
	if err != nil {
		return nil, err
	}
	if pending {
		return nil, ErrUnbanRequestPending
	}

	// Atomic guard: racing submissions cannot push the counter past the
	// cap even though the checks above read a stale account.
	consumed, err := s.accounts.ConsumeUnbanAttempt(ctx, requesterID)
	if err != nil {
		return nil, err
	}
	if !consumed {
		return nil, ErrUnbanAttemptsExceeded
	}

	req := &UnbanRequest{
		ID:             uuid.New(),
		RequesterType:  requesterType,
		RequesterID:    requesterID,
		RequesterName:  acct.Name,
		RequesterEmail: acct.Email,
		BanReason:      acct.BanReason,
		RequestMessage: message,
		Status:         UnbanRequestPending,
		CreatedAt:      time.Now(),
	}

	if err := s.requests.Create(ctx, req); err != nil {
		return nil, err
	}

	return req, nil
}

// ListMyUnbanRequests returns the requester's petitions, newest first
func (s *Service) ListMyUnbanRequests(ctx context.Context, requesterID uuid.UUID) ([]*UnbanRequest, error) {
	return s.requests.ListByRequester(ctx, requesterID)
}

// ListUnbanRequests returns petitions for the admin console
func (s *Service) ListUnbanRequests(ctx context.Context, filter *UnbanRequestFilter) ([]*UnbanRequest, int, error) {
	requests, err := s.requests.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.requests.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return requests, total, nil
}

// DecideUnbanRequest approves or denies a pending petition. Approval
// unbans the account (restoring doctor availability, clearing the attempt
// counter); denial touches only the request. Either way the request is
// terminal afterwards: a second decision fails with "already processed".
func (s *Service) DecideUnbanRequest(ctx context.Context, requestID uuid.UUID, approve bool, moderatorID uuid.UUID, adminResponse string) (*UnbanRequest, error) {
	req, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, ErrUnbanRequestNotFound
	}
	if req.Status != UnbanRequestPending {
		return nil, ErrUnbanRequestProcessed
	}

	if approve {
		acct, err := s.accounts.Unban(ctx, req.RequesterType, req.RequesterID)
		if err != nil {
			return nil, err
		}
		if acct == nil {
			// Account already unbanned elsewhere (expiry sweep or a
			// direct admin unban); the request still gets closed out.
			log.Warn().
				Str("request_id", requestID.String()).
				Str("requester_id", req.RequesterID.String()).
				Msg("Unban request approved for an account that is no longer banned")
		}
	}

	status := UnbanRequestDenied
	if approve {
		status = UnbanRequestApproved
	}

	decided, err := s.requests.Decide(ctx, requestID, status, adminResponse, moderatorID)
	if err != nil {
		return nil, err
	}
	if decided == nil {
		return nil, ErrUnbanRequestProcessed
	}

	log.Info().
		Str("request_id", requestID.String()).
		Str("status", string(status)).
		Str("moderator_id", moderatorID.String()).
		Msg("Unban request decided")

	return decided, nil
}
