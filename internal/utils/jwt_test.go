package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	secret   = "unit-test-signing-key"
	issuer   = "stocktracker"
	audience = "stocktracker-clients"
)

func TestGenerateAndParseJWT(t *testing.T) {
	token, err := GenerateJWT(42, "alice", "alice@example.com", secret, issuer, audience)
	if err != nil {
		t.Fatalf("Failed to generate token: %v", err)
	}

	claims, err := ParseJWT(token, secret, issuer, audience)
	if err != nil {
		t.Fatalf("Failed to parse token: %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("Expected user ID 42, got %d", claims.UserID)
	}
	if claims.Username != "alice" {
		t.Errorf("Expected username alice, got %s", claims.Username)
	}
	if claims.Email != "alice@example.com" {
		t.Errorf("Expected email claim, got %s", claims.Email)
	}
	// Expiry is 7 days out
	if claims.ExpiresAt == nil || time.Until(claims.ExpiresAt.Time) < 6*24*time.Hour {
		t.Error("Expected a 7-day expiry")
	}
}

func TestParseJWTRejectsWrongKey(t *testing.T) {
	token, err := GenerateJWT(1, "alice", "alice@example.com", secret, issuer, audience)
	if err != nil {
		t.Fatalf("Failed to generate token: %v", err)
	}
	if _, err := ParseJWT(token, "some-other-key", issuer, audience); err == nil {
		t.Error("Expected a mis-signed token to be rejected")
	}
}

func TestParseJWTRejectsWrongIssuerOrAudience(t *testing.T) {
	token, err := GenerateJWT(1, "alice", "alice@example.com", secret, issuer, audience)
	if err != nil {
		t.Fatalf("Failed to generate token: %v", err)
	}
	if _, err := ParseJWT(token, secret, "other-issuer", audience); err == nil {
		t.Error("Expected a wrong-issuer token to be rejected")
	}
	if _, err := ParseJWT(token, secret, issuer, "other-audience"); err == nil {
		t.Error("Expected a wrong-audience token to be rejected")
	}
}

func TestParseJWTRejectsExpiredToken(t *testing.T) {
	// Craft an otherwise valid token that expired an hour ago
	claims := Claims{
		UserID:   1,
		Username: "alice",
		Email:    "alice@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Audience:  jwt.ClaimStrings{audience},
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("Failed to sign token: %v", err)
	}
	if _, err := ParseJWT(token, secret, issuer, audience); err == nil {
		t.Error("Expected an expired token to be rejected")
	}
}

func TestParseJWTRejectsWrongSigningMethod(t *testing.T) {
	// HS256 is not accepted even with the right key
	claims := Claims{
		UserID: 1,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Audience:  jwt.ClaimStrings{audience},
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("Failed to sign token: %v", err)
	}
	if _, err := ParseJWT(token, secret, issuer, audience); err == nil {
		t.Error("Expected a token with the wrong signing method to be rejected")
	}
}
