package auth

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/vetlink/vetlink-api/internal/domain/account"
	"github.com/vetlink/vetlink-api/internal/pkg/jwt"
	"github.com/vetlink/vetlink-api/internal/pkg/password"
)

// Service handles authentication business logic
type Service struct {
	accounts   account.Repository
	jwtService *jwt.Service
}

// NewService creates auth service
func NewService(accounts account.Repository, jwtService *jwt.Service) *Service {
	return &Service{
		accounts:   accounts,
		jwtService: jwtService,
	}
}

// Register creates a new user or doctor account
func (s *Service) Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error) {
	req.Email = normalizeEmail(req.Email)

	accountType, err := account.ParseType(req.Type)
	if err != nil {
		return nil, ErrInvalidAccountType
	}

	existing, _ := s.accounts.GetByEmail(ctx, req.Email)
	if existing != nil {
		return nil, ErrEmailAlreadyExists
	}

	hash, err := password.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	acct := &account.Account{
		ID:           uuid.New(),
		Type:         accountType,
		Email:        req.Email,
		PasswordHash: hash,
		Name:         req.Name,
		IsAvailable:  accountType == account.TypeDoctor,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if req.Specialty != "" {
		acct.Specialty = sql.NullString{String: req.Specialty, Valid: true}
	}

	if err := s.accounts.Create(ctx, acct); err != nil {
		if err == account.ErrEmailAlreadyExists {
			return nil, ErrEmailAlreadyExists
		}
		return nil, err
	}

	return s.buildAuthResponse(acct)
}

// Login authenticates an account. Banned accounts still get a token: the
// active-account middleware fences them off everything except the unban
// request surface and their own profile.
func (s *Service) Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
	req.Email = normalizeEmail(req.Email)

	accountType, err := account.ParseType(req.Type)
	if err != nil {
		return nil, ErrInvalidAccountType
	}

	acct, err := s.accounts.GetByEmail(ctx, req.Email)
	if err != nil || acct == nil || acct.Type != accountType {
		return nil, ErrInvalidCredentials
	}

	if !password.Verify(req.Password, acct.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	return s.buildAuthResponse(acct)
}

// GetCurrentAccount returns the current account by ID
func (s *Service) GetCurrentAccount(ctx context.Context, accountID uuid.UUID) (*AccountResponse, error) {
	acct, err := s.accounts.GetByID(ctx, accountID)
	if err != nil || acct == nil {
		return nil, ErrAccountNotFound
	}

	resp := NewAccountResponse(acct)
	return &resp, nil
}

func (s *Service) buildAuthResponse(acct *account.Account) (*AuthResponse, error) {
	accessToken, err := s.jwtService.GenerateAccessToken(acct.ID, string(acct.Type), acct.IsBanned)
	if err != nil {
		return nil, err
	}

	return &AuthResponse{
		Account: NewAccountResponse(acct),
		Tokens: TokensResponse{
			AccessToken: accessToken,
			ExpiresIn:   int(s.jwtService.GetAccessTTL().Seconds()),
		},
	}, nil
}
