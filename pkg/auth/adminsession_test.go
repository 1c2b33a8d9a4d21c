package auth

import (
	"strings"
	"testing"
	"time"
)

func newTestSessions(t *testing.T) *AdminSessions {
	t.Helper()
	s, err := NewAdminSessions("test-secret")
	if err != nil {
		t.Fatalf("Failed to create session minter: %v", err)
	}
	return s
}

func TestAdminSession_RoundTrip(t *testing.T) {
	s := newTestSessions(t)

	token, err := s.Create()
	if err != nil {
		t.Fatalf("Failed to create token: %v", err)
	}

	if err := s.Validate(token); err != nil {
		t.Errorf("Expected freshly minted token to validate, got %v", err)
	}
}

func TestAdminSession_ValidateIsIdempotent(t *testing.T) {
	s := newTestSessions(t)

	token, err := s.Create()
	if err != nil {
		t.Fatalf("Failed to create token: %v", err)
	}

	first := s.Validate(token)
	second := s.Validate(token)
	if first != second {
		t.Errorf("Expected repeated validation to agree, got %v then %v", first, second)
	}
}

func TestAdminSession_ExpiryBoundaryIsExclusive(t *testing.T) {
	s := newTestSessions(t)

	issued := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return issued }

	token, err := s.Create()
	if err != nil {
		t.Fatalf("Failed to create token: %v", err)
	}

	// One second before expiry: still valid
	s.now = func() time.Time { return issued.Add(AdminSessionTTL - time.Second) }
	if err := s.Validate(token); err != nil {
		t.Errorf("Expected token valid just before expiry, got %v", err)
	}

	// Exactly at expiry: already expired
	s.now = func() time.Time { return issued.Add(AdminSessionTTL) }
	if err := s.Validate(token); err != ErrSessionExpired {
		t.Errorf("Expected ErrSessionExpired at exact expiry instant, got %v", err)
	}

	// After expiry
	s.now = func() time.Time { return issued.Add(AdminSessionTTL + time.Hour) }
	if err := s.Validate(token); err != ErrSessionExpired {
		t.Errorf("Expected ErrSessionExpired after expiry, got %v", err)
	}
}

func TestAdminSession_TamperedSignatureRejected(t *testing.T) {
	s := newTestSessions(t)

	token, err := s.Create()
	if err != nil {
		t.Fatalf("Failed to create token: %v", err)
	}

	dot := strings.LastIndex(token, ".")
	tampered := token[:dot] + ".AAAA" + token[dot+5:]
	if err := s.Validate(tampered); err != ErrInvalidSession {
		t.Errorf("Expected ErrInvalidSession for tampered signature, got %v", err)
	}
}

func TestAdminSession_TamperedPayloadRejected(t *testing.T) {
	s := newTestSessions(t)

	token, err := s.Create()
	if err != nil {
		t.Fatalf("Failed to create token: %v", err)
	}

	// Flip a byte in the payload segment; signature no longer matches
	tampered := "A" + token[1:]
	if tampered == token {
		tampered = "B" + token[1:]
	}
	if err := s.Validate(tampered); err != ErrInvalidSession {
		t.Errorf("Expected ErrInvalidSession for tampered payload, got %v", err)
	}
}

func TestAdminSession_GarbageTokensRejected(t *testing.T) {
	s := newTestSessions(t)

	for _, token := range []string{"", "no-dot-here", "a.b.c!!", "%%%.%%%"} {
		if err := s.Validate(token); err != ErrInvalidSession {
			t.Errorf("Expected ErrInvalidSession for %q, got %v", token, err)
		}
	}
}

func TestAdminSession_DifferentSecretRejected(t *testing.T) {
	s := newTestSessions(t)
	other, err := NewAdminSessions("another-secret")
	if err != nil {
		t.Fatalf("Failed to create session minter: %v", err)
	}

	token, err := s.Create()
	if err != nil {
		t.Fatalf("Failed to create token: %v", err)
	}

	if err := other.Validate(token); err != ErrInvalidSession {
		t.Errorf("Expected ErrInvalidSession under a different secret, got %v", err)
	}
}
