package moderation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// UnbanRequestFilter filters admin unban request listings
type UnbanRequestFilter struct {
	Status UnbanRequestStatus
	Limit  int
	Offset int
}

// UnbanRequestRepository defines unban request data access interface
type UnbanRequestRepository interface {
	Create(ctx context.Context, req *UnbanRequest) error
	GetByID(ctx context.Context, id uuid.UUID) (*UnbanRequest, error)
	List(ctx context.Context, filter *UnbanRequestFilter) ([]*UnbanRequest, error)
	Count(ctx context.Context, filter *UnbanRequestFilter) (int, error)
	ListByRequester(ctx context.Context, requesterID uuid.UUID) ([]*UnbanRequest, error)
	HasPending(ctx context.Context, requesterID uuid.UUID) (bool, error)
	// Decide flips a pending request to approved or denied in one
	// statement. Returns nil when the request is missing or no longer
	// pending, making decisions race-safe and terminal.
	Decide(ctx context.Context, id uuid.UUID, status UnbanRequestStatus, adminResponse string, reviewedBy uuid.UUID) (*UnbanRequest, error)
}

const unbanRequestColumns = `id, requester_type, requester_id, requester_name, requester_email,
	ban_reason, request_message, status, admin_response, reviewed_by, reviewed_at, created_at`

type unbanRequestRepository struct {
	db *sqlx.DB
}

// NewUnbanRequestRepository creates new unban request repository
func NewUnbanRequestRepository(db *sqlx.DB) UnbanRequestRepository {
	return &unbanRequestRepository{db: db}
}

func (r *unbanRequestRepository) Create(ctx context.Context, req *UnbanRequest) error {
	query := `
		INSERT INTO unban_requests (
			id, requester_type, requester_id, requester_name, requester_email,
			ban_reason, request_message, status, created_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9
		)
	`
	_, err := r.db.ExecContext(ctx, query,
		req.ID,
		req.RequesterType,
		req.RequesterID,
		req.RequesterName,
		req.RequesterEmail,
		req.BanReason,
		req.RequestMessage,
		req.Status,
		req.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("unban request repository create: %w", err)
	}
	return nil
}

func (r *unbanRequestRepository) GetByID(ctx context.Context, id uuid.UUID) (*UnbanRequest, error) {
	query := `SELECT ` + unbanRequestColumns + ` FROM unban_requests WHERE id = $1`
	var req UnbanRequest
	err := r.db.GetContext(ctx, &req, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &req, nil
}

func (r *unbanRequestRepository) List(ctx context.Context, filter *UnbanRequestFilter) ([]*UnbanRequest, error) {
	query := `SELECT ` + unbanRequestColumns + ` FROM unban_requests WHERE 1=1`
	args := []interface{}{}
	argPos := 1

	if filter != nil && filter.Status != "" {
		query += fmt.Sprintf(` AND status = $%d`, argPos)
		args = append(args, filter.Status)
		argPos++
	}

	query += ` ORDER BY created_at DESC`

	if filter != nil && filter.Limit > 0 {
		query += fmt.Sprintf(` LIMIT $%d`, argPos)
		args = append(args, filter.Limit)
		argPos++
		if filter.Offset > 0 {
			query += fmt.Sprintf(` OFFSET $%d`, argPos)
			args = append(args, filter.Offset)
		}
	} else if filter == nil {
		query += ` LIMIT 50`
	}

	var requests []*UnbanRequest
	err := r.db.SelectContext(ctx, &requests, query, args...)
	return requests, err
}

func (r *unbanRequestRepository) Count(ctx context.Context, filter *UnbanRequestFilter) (int, error) {
	query := `SELECT COUNT(*) FROM unban_requests WHERE 1=1`
	args := []interface{}{}

	if filter != nil && filter.Status != "" {
		query += ` AND status = $1`
		args = append(args, filter.Status)
	}

	var count int
	err := r.db.GetContext(ctx, &count, query, args...)
	return count, err
}

func (r *unbanRequestRepository) ListByRequester(ctx context.Context, requesterID uuid.UUID) ([]*UnbanRequest, error) {
	query := `SELECT ` + unbanRequestColumns + ` FROM unban_requests WHERE requester_id = $1 ORDER BY created_at DESC`
	var requests []*UnbanRequest
	err := r.db.SelectContext(ctx, &requests, query, requesterID)
	return requests, err
}

func (r *unbanRequestRepository) HasPending(ctx context.Context, requesterID uuid.UUID) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM unban_requests
			WHERE requester_id = $1 AND status = $2
		)
	`
	var exists bool
	err := r.db.GetContext(ctx, &exists, query, requesterID, UnbanRequestPending)
	return exists, err
}

func (r *unbanRequestRepository) Decide(ctx context.Context, id uuid.UUID, status UnbanRequestStatus, adminResponse string, reviewedBy uuid.UUID) (*UnbanRequest, error) {
	query := `
		UPDATE unban_requests
		SET status = $2,
		    admin_response = $3,
		    reviewed_by = $4,
		    reviewed_at = NOW()
		WHERE id = $1 AND status = $5
		RETURNING ` + unbanRequestColumns
	resp := sql.NullString{String: adminResponse, Valid: adminResponse != ""}
	var req UnbanRequest
	err := r.db.GetContext(ctx, &req, query, id, status, resp, reviewedBy, UnbanRequestPending)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("unban request repository decide: %w", err)
	}
	return &req, nil
}
