package jwtlocal

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "super-secret"

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func TestVerify_ValidToken(t *testing.T) {
	v, err := NewVerifier(testSecret)
	if err != nil {
		t.Fatalf("NewVerifier: %v", err)
	}

	token := signToken(t, testSecret, jwt.MapClaims{
		"sub":   "user-1",
		"email": "user@example.com",
		"exp":   time.Now().Add(time.Hour).Unix(),
	})

	claims, err := v.Verify(context.Background(), token)
	if err != nil {
		t.Fatalf("Verify returned error: %v", err)
	}
	if claims.UserID != "user-1" {
		t.Fatalf("expected user-1, got %q", claims.UserID)
	}
	if claims.Email != "user@example.com" {
		t.Fatalf("unexpected email %q", claims.Email)
	}
}

func TestVerify_WrongSecret(t *testing.T) {
	v, _ := NewVerifier(testSecret)

	token := signToken(t, "other-secret", jwt.MapClaims{
		"sub": "user-1",
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	if _, err := v.Verify(context.Background(), token); err == nil {
		t.Fatalf("expected error for wrong secret")
	}
}

func TestVerify_ExpiredToken(t *testing.T) {
	v, _ := NewVerifier(testSecret)

	token := signToken(t, testSecret, jwt.MapClaims{
		"sub": "user-1",
		"exp": time.Now().Add(-time.Hour).Unix(),
	})

	if _, err := v.Verify(context.Background(), token); err == nil {
		t.Fatalf("expected error for expired token")
	}
}

func TestVerify_MissingSub(t *testing.T) {
	v, _ := NewVerifier(testSecret)

	token := signToken(t, testSecret, jwt.MapClaims{
		"email": "user@example.com",
		"exp":   time.Now().Add(time.Hour).Unix(),
	})

	if _, err := v.Verify(context.Background(), token); err == nil {
		t.Fatalf("expected error for missing sub")
	}
}

func TestVerify_EmptyToken(t *testing.T) {
	v, _ := NewVerifier(testSecret)

	if _, err := v.Verify(context.Background(), "  "); err != ErrTokenEmpty {
		t.Fatalf("expected ErrTokenEmpty, got %v", err)
	}
}

func TestNewVerifier_EmptySecret(t *testing.T) {
	if _, err := NewVerifier("   "); err != ErrSecretEmpty {
		t.Fatalf("expected ErrSecretEmpty, got %v", err)
	}
}
