package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Membership roles. Role is free-text on the wire; these are the values the
// application itself writes.
const (
	RoleOwner     = "owner"
	RoleCofounder = "cofounder"
	RoleTeam      = "team"
)

// Membership links a user to a startup with a role. At most one membership
// per (user, startup) pair is expected but not enforced with a unique index,
// so readers must tolerate zero-or-more rows.
type Membership struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	StartupID string             `bson:"startupId" json:"startup_id"`
	UserID    string             `bson:"userId" json:"user_id"`
	Role      string             `bson:"role" json:"role"`
	CreatedAt time.Time          `bson:"createdAt" json:"created_at"`
}

// AddMemberRequest is the request body for granting a role on a startup
type AddMemberRequest struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
}
