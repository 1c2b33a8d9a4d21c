package services

import (
	"context"

	"founderflow/internal/models"
)

// AuthzStore adapts the startup and membership services to the access
// gateway's read interface.
type AuthzStore struct {
	startups    *StartupService
	memberships *MembershipService
}

func NewAuthzStore(startups *StartupService, memberships *MembershipService) *AuthzStore {
	return &AuthzStore{startups: startups, memberships: memberships}
}

func (a *AuthzStore) GetStartup(ctx context.Context, startupID string) (*models.Startup, error) {
	return a.startups.GetByID(ctx, startupID)
}

func (a *AuthzStore) ListMemberships(ctx context.Context, startupID, userID string) ([]models.Membership, error) {
	return a.memberships.ListFor(ctx, startupID, userID)
}
