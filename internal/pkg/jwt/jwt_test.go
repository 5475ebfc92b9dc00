package jwt

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestGenerateAndValidate(t *testing.T) {
	svc := NewService("test-secret", 15*time.Minute)
	accountID := uuid.New()

	token, err := svc.GenerateAccessToken(accountID, "doctor", true)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	claims, err := svc.ValidateAccessToken(token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.AccountID != accountID {
		t.Errorf("account id = %s, want %s", claims.AccountID, accountID)
	}
	if claims.AccountType != "doctor" {
		t.Errorf("account type = %s, want doctor", claims.AccountType)
	}
	if !claims.IsBanned {
		t.Error("is_banned claim lost in round trip")
	}
	if claims.Issuer != "vetlink-api" {
		t.Errorf("issuer = %s, want vetlink-api", claims.Issuer)
	}
}

func TestValidateExpiredToken(t *testing.T) {
	svc := NewService("test-secret", -time.Minute)

	token, err := svc.GenerateAccessToken(uuid.New(), "user", false)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	_, err = svc.ValidateAccessToken(token)
	if err != ErrExpiredToken {
		t.Fatalf("err = %v, want ErrExpiredToken", err)
	}
}

func TestValidateWrongSecret(t *testing.T) {
	token, err := NewService("secret-a", time.Minute).GenerateAccessToken(uuid.New(), "user", false)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	_, err = NewService("secret-b", time.Minute).ValidateAccessToken(token)
	if err != ErrInvalidToken {
		t.Fatalf("err = %v, want ErrInvalidToken", err)
	}
}

func TestValidateGarbage(t *testing.T) {
	svc := NewService("test-secret", time.Minute)
	if _, err := svc.ValidateAccessToken("not.a.token"); err != ErrInvalidToken {
		t.Fatalf("err = %v, want ErrInvalidToken", err)
	}
}
