package authz

import (
	"context"
	"fmt"

	"founderflow/internal/models"
)

// TokenVerifier checks a bearer token and returns the authenticated user ID.
type TokenVerifier interface {
	VerifyBearer(token string) (userID string, err error)
}

// VerifierFunc adapts a function to the TokenVerifier interface
type VerifierFunc func(token string) (string, error)

func (f VerifierFunc) VerifyBearer(token string) (string, error) {
	return f(token)
}

// ResourceStore loads the records the gateway decides on. GetStartup returns
// (nil, nil) when no startup with the given ID exists.
type ResourceStore interface {
	GetStartup(ctx context.Context, startupID string) (*models.Startup, error)
	ListMemberships(ctx context.Context, startupID, userID string) ([]models.Membership, error)
}

// Grant is the proof of access returned for an authorized request
type Grant struct {
	UserID  string
	Role    string
	Startup *models.Startup
}

// Gateway is the single checkpoint every startup-scoped mutation goes
// through: authenticate the bearer, load the startup, then resolve the
// caller's role.
type Gateway struct {
	verifier TokenVerifier
	store    ResourceStore
}

func NewGateway(verifier TokenVerifier, store ResourceStore) *Gateway {
	return &Gateway{verifier: verifier, store: store}
}

// Authorize runs the full check sequence for a startup-scoped request.
//
// Order is fixed: token verification first (ErrUnauthenticated), then
// resource existence (ErrStartupNotFound), then access. The owner is granted
// the owner role without consulting memberships; otherwise the caller's
// first membership row decides the role, and no row means ErrForbidden.
func (g *Gateway) Authorize(ctx context.Context, bearer, startupID string) (*Grant, error) {
	if bearer == "" {
		return nil, ErrUnauthenticated
	}

	userID, err := g.verifier.VerifyBearer(bearer)
	if err != nil {
		return nil, ErrUnauthenticated
	}

	startup, err := g.store.GetStartup(ctx, startupID)
	if err != nil {
		return nil, fmt.Errorf("failed to load startup: %w", err)
	}
	if startup == nil {
		return nil, ErrStartupNotFound
	}

	if startup.OwnerID == userID {
		return &Grant{UserID: userID, Role: models.RoleOwner, Startup: startup}, nil
	}

	memberships, err := g.store.ListMemberships(ctx, startupID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load memberships: %w", err)
	}
	if len(memberships) == 0 {
		return nil, ErrForbidden
	}

	return &Grant{UserID: userID, Role: memberships[0].Role, Startup: startup}, nil
}
