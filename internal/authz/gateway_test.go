package authz

import (
	"context"
	"errors"
	"testing"

	"founderflow/internal/models"
)

type fakeStore struct {
	startups    map[string]*models.Startup
	memberships map[string][]models.Membership // key: startupID + "/" + userID
	storeErr    error
}

func (s *fakeStore) GetStartup(ctx context.Context, startupID string) (*models.Startup, error) {
	if s.storeErr != nil {
		return nil, s.storeErr
	}
	return s.startups[startupID], nil
}

func (s *fakeStore) ListMemberships(ctx context.Context, startupID, userID string) ([]models.Membership, error) {
	if s.storeErr != nil {
		return nil, s.storeErr
	}
	return s.memberships[startupID+"/"+userID], nil
}

// verifier that accepts any token of the form "token-for-<userID>"
var testVerifier = VerifierFunc(func(token string) (string, error) {
	const prefix = "token-for-"
	if len(token) > len(prefix) && token[:len(prefix)] == prefix {
		return token[len(prefix):], nil
	}
	return "", errors.New("bad token")
})

func newTestGateway() (*Gateway, *fakeStore) {
	store := &fakeStore{
		startups: map[string]*models.Startup{
			"startup-1": {ID: "startup-1", OwnerID: "alice", Name: "Acme"},
		},
		memberships: map[string][]models.Membership{
			"startup-1/bob": {{StartupID: "startup-1", UserID: "bob", Role: models.RoleTeam}},
		},
	}
	return NewGateway(testVerifier, store), store
}

func TestAuthorize_OwnerWithoutMembershipRow(t *testing.T) {
	gw, _ := newTestGateway()

	grant, err := gw.Authorize(context.Background(), "token-for-alice", "startup-1")
	if err != nil {
		t.Fatalf("Expected owner access, got %v", err)
	}
	if grant.Role != models.RoleOwner {
		t.Errorf("Expected owner role, got %s", grant.Role)
	}
	if grant.UserID != "alice" {
		t.Errorf("Expected alice, got %s", grant.UserID)
	}
	if grant.Startup == nil || grant.Startup.ID != "startup-1" {
		t.Error("Expected the loaded startup on the grant")
	}
}

func TestAuthorize_MemberGetsMembershipRole(t *testing.T) {
	gw, _ := newTestGateway()

	grant, err := gw.Authorize(context.Background(), "token-for-bob", "startup-1")
	if err != nil {
		t.Fatalf("Expected member access, got %v", err)
	}
	if grant.Role != models.RoleTeam {
		t.Errorf("Expected team role, got %s", grant.Role)
	}
}

func TestAuthorize_FirstMembershipRowWins(t *testing.T) {
	gw, store := newTestGateway()
	store.memberships["startup-1/carol"] = []models.Membership{
		{StartupID: "startup-1", UserID: "carol", Role: models.RoleCofounder},
		{StartupID: "startup-1", UserID: "carol", Role: models.RoleTeam},
	}

	grant, err := gw.Authorize(context.Background(), "token-for-carol", "startup-1")
	if err != nil {
		t.Fatalf("Expected access, got %v", err)
	}
	if grant.Role != models.RoleCofounder {
		t.Errorf("Expected the first row's role, got %s", grant.Role)
	}
}

func TestAuthorize_StrangerForbidden(t *testing.T) {
	gw, _ := newTestGateway()

	_, err := gw.Authorize(context.Background(), "token-for-mallory", "startup-1")
	if !errors.Is(err, ErrForbidden) {
		t.Errorf("Expected ErrForbidden, got %v", err)
	}
}

func TestAuthorize_MissingStartup(t *testing.T) {
	gw, _ := newTestGateway()

	_, err := gw.Authorize(context.Background(), "token-for-alice", "no-such-startup")
	if !errors.Is(err, ErrStartupNotFound) {
		t.Errorf("Expected ErrStartupNotFound, got %v", err)
	}
}

func TestAuthorize_BadToken(t *testing.T) {
	gw, _ := newTestGateway()

	for _, token := range []string{"", "garbage", "Bearer something"} {
		if _, err := gw.Authorize(context.Background(), token, "startup-1"); !errors.Is(err, ErrUnauthenticated) {
			t.Errorf("Expected ErrUnauthenticated for %q, got %v", token, err)
		}
	}
}

func TestAuthorize_AuthCheckedBeforeExistence(t *testing.T) {
	gw, _ := newTestGateway()

	// Invalid token against a missing startup: authentication wins
	_, err := gw.Authorize(context.Background(), "garbage", "no-such-startup")
	if !errors.Is(err, ErrUnauthenticated) {
		t.Errorf("Expected ErrUnauthenticated, got %v", err)
	}
}

func TestAuthorize_StoreErrorIsNotForbidden(t *testing.T) {
	gw, store := newTestGateway()
	store.storeErr = errors.New("connection reset")

	_, err := gw.Authorize(context.Background(), "token-for-alice", "startup-1")
	if err == nil {
		t.Fatal("Expected an error")
	}
	if errors.Is(err, ErrForbidden) || errors.Is(err, ErrStartupNotFound) || errors.Is(err, ErrUnauthenticated) {
		t.Errorf("Infrastructure failure must not map to an access decision, got %v", err)
	}
}
