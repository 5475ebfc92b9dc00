package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/vetlink/vetlink-api/internal/pkg/jwt"
	"github.com/vetlink/vetlink-api/internal/pkg/response"
)

type contextKey string

const (
	AccountIDKey   contextKey = "account_id"
	AccountTypeKey contextKey = "account_type"
	IsBannedKey    contextKey = "is_banned"
)

// Auth returns middleware that validates the account JWT.
// Banned accounts pass through here: they still need to reach the
// unban-request endpoint. Use RequireActive to fence them off elsewhere.
func Auth(jwtService *jwt.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				response.Unauthorized(w, "Missing authorization header")
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				response.Unauthorized(w, "Invalid authorization header format")
				return
			}

			claims, err := jwtService.ValidateAccessToken(parts[1])
			if err != nil {
				if err == jwt.ErrExpiredToken {
					response.Unauthorized(w, "Token expired")
				} else {
					response.Unauthorized(w, "Invalid token")
				}
				return
			}

			ctx := context.WithValue(r.Context(), AccountIDKey, claims.AccountID)
			ctx = context.WithValue(ctx, AccountTypeKey, claims.AccountType)
			ctx = context.WithValue(ctx, IsBannedKey, claims.IsBanned)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetAccountID extracts account ID from context
func GetAccountID(ctx context.Context) uuid.UUID {
	if id, ok := ctx.Value(AccountIDKey).(uuid.UUID); ok {
		return id
	}
	return uuid.Nil
}

// GetAccountType extracts account type from context
func GetAccountType(ctx context.Context) string {
	if t, ok := ctx.Value(AccountTypeKey).(string); ok {
		return t
	}
	return ""
}

// IsBanned extracts the ban flag from context
func IsBanned(ctx context.Context) bool {
	if b, ok := ctx.Value(IsBannedKey).(bool); ok {
		return b
	}
	return false
}

// RequireActive blocks banned accounts
func RequireActive(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if IsBanned(r.Context()) {
			response.Forbidden(w, "Your account has been banned")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAccountType returns middleware that checks the account type claim
func RequireAccountType(types ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			accountType := GetAccountType(r.Context())
			for _, t := range types {
				if accountType == t {
					next.ServeHTTP(w, r)
					return
				}
			}
			response.Forbidden(w, "Insufficient permissions")
		})
	}
}
