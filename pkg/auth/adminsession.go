package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// AdminSessionCookie is the cookie name used by the internal admin surface
const AdminSessionCookie = "ff_admin_session"

// AdminSessionTTL is how long a minted admin session stays valid
const AdminSessionTTL = 24 * time.Hour

// Admin session validation errors
var (
	ErrInvalidSession = errors.New("invalid admin session token")
	ErrSessionExpired = errors.New("admin session expired")
)

// adminSessionPayload is the signed token content. Validity is recomputed
// entirely from this payload; there is no server-side session state and no
// revocation list, so a leaked token stays valid until natural expiry.
type adminSessionPayload struct {
	IssuedAt  int64 `json:"iat"`
	ExpiresAt int64 `json:"exp"`
}

// AdminSessions mints and validates self-verifying admin session tokens.
// Token format: base64url(payload) "." base64url(HMAC-SHA256(payload)),
// both segments unpadded.
type AdminSessions struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time // injectable for expiry tests
}

// NewAdminSessions creates a session minter backed by the server secret
func NewAdminSessions(secret string) (*AdminSessions, error) {
	if secret == "" {
		return nil, errors.New("admin session secret cannot be empty")
	}
	return &AdminSessions{
		secret: []byte(secret),
		ttl:    AdminSessionTTL,
		now:    time.Now,
	}, nil
}

// Create mints a new signed session token valid for the session TTL
func (s *AdminSessions) Create() (string, error) {
	issued := s.now()
	payload, err := json.Marshal(adminSessionPayload{
		IssuedAt:  issued.Unix(),
		ExpiresAt: issued.Add(s.ttl).Unix(),
	})
	if err != nil {
		return "", fmt.Errorf("failed to serialize session payload: %w", err)
	}

	encoded := base64.RawURLEncoding.EncodeToString(payload)
	return encoded + "." + s.sign(encoded), nil
}

// Validate checks a token's signature and expiry. Stateless and repeatable:
// the same token yields the same verdict until the clock crosses its expiry.
func (s *AdminSessions) Validate(token string) error {
	dot := strings.LastIndex(token, ".")
	if dot < 0 {
		return ErrInvalidSession
	}
	encoded, sig := token[:dot], token[dot+1:]

	expected, err := base64.RawURLEncoding.DecodeString(s.sign(encoded))
	if err != nil {
		return ErrInvalidSession
	}
	supplied, err := base64.RawURLEncoding.DecodeString(sig)
	if err != nil {
		return ErrInvalidSession
	}
	if !hmac.Equal(expected, supplied) {
		return ErrInvalidSession
	}

	raw, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return ErrInvalidSession
	}
	var payload adminSessionPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return ErrInvalidSession
	}

	// Exclusive boundary: a token whose expiry equals the current instant is
	// already expired.
	if !s.now().Before(time.Unix(payload.ExpiresAt, 0)) {
		return ErrSessionExpired
	}

	return nil
}

func (s *AdminSessions) sign(encodedPayload string) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(encodedPayload))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}
