package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is an authenticated account (founder, investor, job-seeker or
// customer). The password hash never leaves the server.
type User struct {
	ID                  primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email               string             `bson:"email" json:"email"`
	PasswordHash        string             `bson:"passwordHash,omitempty" json:"-"` // Argon2id hash
	Role                string             `bson:"role,omitempty" json:"role,omitempty"`
	RefreshTokenVersion int                `bson:"refreshTokenVersion" json:"-"` // Incremented on logout
	CreatedAt           time.Time          `bson:"createdAt" json:"created_at"`
	LastLoginAt         time.Time          `bson:"lastLoginAt" json:"last_login_at"`
}

// UserResponse is the API shape for user data
type UserResponse struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	Role        string    `json:"role,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	LastLoginAt time.Time `json:"last_login_at"`
}

// ToResponse converts User to UserResponse
func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:          u.ID.Hex(),
		Email:       u.Email,
		Role:        u.Role,
		CreatedAt:   u.CreatedAt,
		LastLoginAt: u.LastLoginAt,
	}
}
