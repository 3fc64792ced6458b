package auth_test

import (
	"testing"
	"time"

	"appointment-planner-api/internal/auth"
)

func TestPasswordRoundTrip(t *testing.T) {
	hash, err := auth.HashPassword("correct horse")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if !auth.CheckPassword(hash, "correct horse") {
		t.Error("correct password rejected")
	}
	if auth.CheckPassword(hash, "wrong horse") {
		t.Error("wrong password accepted")
	}
}

func TestTokenRoundTrip(t *testing.T) {
	tok, err := auth.IssueToken("u-1", "u@example.com", "secret")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	claims, err := auth.ParseToken(tok, "secret")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.UserID != "u-1" || claims.Email != "u@example.com" {
		t.Errorf("claims = %+v", claims)
	}

	diff := time.Until(claims.ExpiresAt.Time)
	if diff < auth.AccessTokenTTL-time.Minute || diff > auth.AccessTokenTTL+time.Minute {
		t.Errorf("expiry %v, want ~%v", diff, auth.AccessTokenTTL)
	}
}

func TestParseTokenRejects(t *testing.T) {
	tok, _ := auth.IssueToken("u-1", "u@example.com", "secret")

	if _, err := auth.ParseToken(tok, "other-secret"); err == nil {
		t.Error("wrong secret accepted")
	}
	if _, err := auth.ParseToken("not.a.token", "secret"); err == nil {
		t.Error("garbage accepted")
	}
}

func TestRefreshTokenHash(t *testing.T) {
	raw, hash, err := auth.GenerateRefreshToken()
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(raw) != 64 || len(hash) != 64 {
		t.Errorf("lengths = %d/%d, want 64/64", len(raw), len(hash))
	}
	if auth.HashRefreshToken(raw) != hash {
		t.Error("hash mismatch")
	}
}
