package admin

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

func TestAdminTokenRoundTrip(t *testing.T) {
	svc := NewJWTService("admin-secret", time.Hour)
	user := &AdminUser{ID: uuid.New(), Email: "mod@vetlink.io", Role: RoleModerator}

	token, err := svc.GenerateToken(user)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	claims, err := svc.ValidateToken(token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.AdminID != user.ID {
		t.Errorf("admin id = %s, want %s", claims.AdminID, user.ID)
	}
	if claims.Role != RoleModerator {
		t.Errorf("role = %s, want moderator", claims.Role)
	}
	if claims.Issuer != "vetlink-admin" {
		t.Errorf("issuer = %s, want vetlink-admin", claims.Issuer)
	}
}

func TestAdminTokenRejectsWrongSecret(t *testing.T) {
	token, err := NewJWTService("secret-a", time.Hour).GenerateToken(&AdminUser{ID: uuid.New(), Role: RoleAdmin})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if _, err := NewJWTService("secret-b", time.Hour).ValidateToken(token); err == nil {
		t.Fatal("token signed with a different secret must fail validation")
	}
}

func TestAdminTokenRejectsNonHMACAlgorithm(t *testing.T) {
	svc := NewJWTService("admin-secret", time.Hour)

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, AdminClaims{
		AdminID: uuid.New(),
		Role:    RoleSuperAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	token, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := svc.ValidateToken(token); err == nil {
		t.Fatal("token with alg=none must fail validation")
	}
}
