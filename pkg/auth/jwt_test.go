package auth

import (
	"testing"
	"time"
)

func TestJWTAuth_RoundTrip(t *testing.T) {
	a, err := NewJWTAuth("jwt-test-secret", 0, 0)
	if err != nil {
		t.Fatalf("Failed to create JWT auth: %v", err)
	}

	access, refresh, err := a.GenerateTokens("user-1", "founder@example.com", "user", 3)
	if err != nil {
		t.Fatalf("Failed to generate tokens: %v", err)
	}

	user, err := a.VerifyAccessToken(access)
	if err != nil {
		t.Fatalf("Failed to verify access token: %v", err)
	}
	if user.ID != "user-1" || user.Email != "founder@example.com" || user.Role != "user" {
		t.Errorf("Unexpected user from token: %+v", user)
	}

	claims, err := a.VerifyRefreshToken(refresh)
	if err != nil {
		t.Fatalf("Failed to verify refresh token: %v", err)
	}
	if claims.UserID != "user-1" {
		t.Errorf("Expected user ID user-1 in refresh claims, got %s", claims.UserID)
	}
	if claims.TokenVersion != 3 {
		t.Errorf("Expected token version 3 in refresh claims, got %d", claims.TokenVersion)
	}
}

func TestJWTAuth_TokenVersionSurvivesRoundTrip(t *testing.T) {
	a, err := NewJWTAuth("jwt-test-secret", 0, 0)
	if err != nil {
		t.Fatalf("Failed to create JWT auth: %v", err)
	}

	// A token minted before a logout carries the old version, so comparing
	// it against the user's current version must detect the mismatch.
	_, oldRefresh, err := a.GenerateTokens("user-1", "founder@example.com", "user", 0)
	if err != nil {
		t.Fatalf("Failed to generate tokens: %v", err)
	}

	claims, err := a.VerifyRefreshToken(oldRefresh)
	if err != nil {
		t.Fatalf("Failed to verify refresh token: %v", err)
	}

	currentVersion := 1 // version after a logout bump
	if claims.TokenVersion == currentVersion {
		t.Error("Expected pre-logout refresh token to carry a stale version")
	}
}

func TestJWTAuth_ExpiredTokenRejected(t *testing.T) {
	a, err := NewJWTAuth("jwt-test-secret", -time.Minute, 0)
	if err != nil {
		t.Fatalf("Failed to create JWT auth: %v", err)
	}

	access, _, err := a.GenerateTokens("user-1", "founder@example.com", "user", 0)
	if err != nil {
		t.Fatalf("Failed to generate tokens: %v", err)
	}

	if _, err := a.VerifyAccessToken(access); err == nil {
		t.Error("Expected expired token to be rejected")
	}
}

func TestJWTAuth_WrongSecretRejected(t *testing.T) {
	a, _ := NewJWTAuth("secret-one", 0, 0)
	b, _ := NewJWTAuth("secret-two", 0, 0)

	access, _, err := a.GenerateTokens("user-1", "founder@example.com", "user", 0)
	if err != nil {
		t.Fatalf("Failed to generate tokens: %v", err)
	}

	if _, err := b.VerifyAccessToken(access); err == nil {
		t.Error("Expected token signed with a different secret to be rejected")
	}
}

func TestExtractToken(t *testing.T) {
	token, err := ExtractToken("Bearer abc.def.ghi")
	if err != nil {
		t.Fatalf("Failed to extract token: %v", err)
	}
	if token != "abc.def.ghi" {
		t.Errorf("Expected abc.def.ghi, got %s", token)
	}

	for _, header := range []string{"", "abc", "Basic abc", "Bearer "} {
		if _, err := ExtractToken(header); err == nil {
			t.Errorf("Expected error for header %q", header)
		}
	}
}
