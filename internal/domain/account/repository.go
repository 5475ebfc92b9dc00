package account

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// BanUpdate carries the fields applied by a single ban statement
type BanUpdate struct {
	ID       uuid.UUID
	Type     Type
	Reason   string
	BannedBy uuid.UUID
	UnbanAt  sql.NullTime // NULL means permanent
}

// ListFilter filters admin account listings
type ListFilter struct {
	Type   Type
	Banned *bool
	Limit  int
	Offset int
}

// Repository defines account data access interface
type Repository interface {
	Create(ctx context.Context, acct *Account) error
	GetByID(ctx context.Context, id uuid.UUID) (*Account, error)
	GetByTypeAndID(ctx context.Context, accountType Type, id uuid.UUID) (*Account, error)
	GetByEmail(ctx context.Context, email string) (*Account, error)
	List(ctx context.Context, filter *ListFilter) ([]*Account, error)
	Count(ctx context.Context, filter *ListFilter) (int, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// Ban applies all ban fields in one statement and resets the unban
	// request counter. Returns the updated account, or nil if no account
	// matched the (type, id) pair.
	Ban(ctx context.Context, upd BanUpdate) (*Account, error)
	// Unban clears ban fields in one statement, keeping banned_at and
	// banned_by as the last-ban audit trail. Doctor availability is
	// restored. Returns nil if the account is missing or not banned.
	Unban(ctx context.Context, accountType Type, id uuid.UUID) (*Account, error)
	// ConsumeUnbanAttempt atomically increments unban_request_attempts,
	// refusing when the account is not banned or the cap is reached.
	ConsumeUnbanAttempt(ctx context.Context, id uuid.UUID) (bool, error)
	// SweepExpiredBans unbans every account whose scheduled unban_at has
	// passed. Returns the number of accounts lifted.
	SweepExpiredBans(ctx context.Context, now time.Time) (int64, error)
	// SetAvailability flips a doctor's availability flag.
	SetAvailability(ctx context.Context, id uuid.UUID, available bool) error
}

const accountColumns = `id, type, email, password_hash, name, specialty, is_available,
	is_banned, ban_reason, banned_at, banned_by, unban_at, unban_request_attempts,
	created_at, updated_at`

type repository struct {
	db *sqlx.DB
}

// NewRepository creates new account repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, acct *Account) error {
	query := `
		INSERT INTO accounts (id, type, email, password_hash, name, specialty, is_available, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := r.db.ExecContext(ctx, query,
		acct.ID,
		acct.Type,
		acct.Email,
		acct.PasswordHash,
		acct.Name,
		acct.Specialty,
		acct.IsAvailable,
		acct.CreatedAt,
		acct.UpdatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return ErrEmailAlreadyExists
		}
		return fmt.Errorf("account repository create: %w", err)
	}
	return nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1`
	var acct Account
	err := r.db.GetContext(ctx, &acct, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &acct, nil
}

func (r *repository) GetByTypeAndID(ctx context.Context, accountType Type, id uuid.UUID) (*Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1 AND type = $2`
	var acct Account
	err := r.db.GetContext(ctx, &acct, query, id, accountType)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &acct, nil
}

func (r *repository) GetByEmail(ctx context.Context, email string) (*Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE email = $1`
	var acct Account
	err := r.db.GetContext(ctx, &acct, query, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &acct, nil
}

func (r *repository) List(ctx context.Context, filter *ListFilter) ([]*Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE 1=1`
	args := []interface{}{}
	argPos := 1

	if filter != nil {
		if filter.Type != "" {
			query += fmt.Sprintf(` AND type = $%d`, argPos)
			args = append(args, filter.Type)
			argPos++
		}
		if filter.Banned != nil {
			query += fmt.Sprintf(` AND is_banned = $%d`, argPos)
			args = append(args, *filter.Banned)
			argPos++
		}
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
	}

	var accounts []*Account
	err := r.db.SelectContext(ctx, &accounts, query, args...)
	return accounts, err
}

func (r *repository) Count(ctx context.Context, filter *ListFilter) (int, error) {
	query := `SELECT COUNT(*) FROM accounts WHERE 1=1`
	args := []interface{}{}
	argPos := 1

	if filter != nil {
		if filter.Type != "" {
			query += fmt.Sprintf(` AND type = $%d`, argPos)
			args = append(args, filter.Type)
			argPos++
		}
		if filter.Banned != nil {
			query += fmt.Sprintf(` AND is_banned = $%d`, argPos)
			args = append(args, *filter.Banned)
		}
	}

	var count int
	err := r.db.GetContext(ctx, &count, query, args...)
	return count, err
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM accounts WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrAccountNotFound
	}
	return nil
}

func (r *repository) Ban(ctx context.Context, upd BanUpdate) (*Account, error) {
	query := `
		UPDATE accounts
		SET is_banned = true,
		    ban_reason = $3,
		    banned_at = NOW(),
		    banned_by = $4,
		    unban_at = $5,
		    unban_request_attempts = 0,
		    updated_at = NOW()
		WHERE id = $1 AND type = $2
		RETURNING ` + accountColumns
	var acct Account
	err := r.db.GetContext(ctx, &acct, query, upd.ID, upd.Type, upd.Reason, upd.BannedBy, upd.UnbanAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("account repository ban: %w", err)
	}
	return &acct, nil
}

func (r *repository) Unban(ctx context.Context, accountType Type, id uuid.UUID) (*Account, error) {
	query := `
		UPDATE accounts
		SET is_banned = false,
		    ban_reason = '',
		    unban_at = NULL,
		    unban_request_attempts = 0,
		    is_available = CASE WHEN type = 'doctor' THEN true ELSE is_available END,
		    updated_at = NOW()
		WHERE id = $1 AND type = $2 AND is_banned
		RETURNING ` + accountColumns
	var acct Account
	err := r.db.GetContext(ctx, &acct, query, id, accountType)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("account repository unban: %w", err)
	}
	return &acct, nil
}

func (r *repository) ConsumeUnbanAttempt(ctx context.Context, id uuid.UUID) (bool, error) {
	query := `
		UPDATE accounts
		SET unban_request_attempts = unban_request_attempts + 1, updated_at = NOW()
		WHERE id = $1 AND is_banned AND unban_request_attempts < $2
	`
	result, err := r.db.ExecContext(ctx, query, id, MaxUnbanRequestAttempts)
	if err != nil {
		return false, err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

func (r *repository) SweepExpiredBans(ctx context.Context, now time.Time) (int64, error) {
	query := `
		UPDATE accounts
		SET is_banned = false,
		    ban_reason = '',
		    unban_at = NULL,
		    unban_request_attempts = 0,
		    is_available = CASE WHEN type = 'doctor' THEN true ELSE is_available END,
		    updated_at = NOW()
		WHERE is_banned AND unban_at IS NOT NULL AND unban_at <= $1
	`
	result, err := r.db.ExecContext(ctx, query, now)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *repository) SetAvailability(ctx context.Context, id uuid.UUID, available bool) error {
	query := `UPDATE accounts SET is_available = $2, updated_at = NOW() WHERE id = $1 AND type = 'doctor'`
	_, err := r.db.ExecContext(ctx, query, id, available)
	return err
}
