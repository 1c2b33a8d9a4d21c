package services

import (
	"context"
	"fmt"
	"time"

	"founderflow/internal/database"
	"founderflow/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MembershipService handles the startup-to-user membership rows
type MembershipService struct {
	db         *database.MongoDB
	collection *mongo.Collection
}

// NewMembershipService creates a new membership service
func NewMembershipService(db *database.MongoDB) *MembershipService {
	return &MembershipService{
		db:         db,
		collection: db.Collection(database.CollectionMemberships),
	}
}

// Add records a membership row. Duplicates for the same (startup, user) pair
// are allowed; role resolution reads the earliest row.
func (s *MembershipService) Add(ctx context.Context, startupID string, req *models.AddMemberRequest) (*models.Membership, error) {
	if req.Role != models.RoleCofounder && req.Role != models.RoleTeam {
		return nil, fmt.Errorf("unknown role: %s", req.Role)
	}

	membership := &models.Membership{
		ID:        primitive.NewObjectID(),
		StartupID: startupID,
		UserID:    req.UserID,
		Role:      req.Role,
		CreatedAt: time.Now(),
	}

	if _, err := s.collection.InsertOne(ctx, membership); err != nil {
		return nil, fmt.Errorf("failed to add member: %w", err)
	}
	return membership, nil
}

// ListByStartup returns every membership row for a startup, oldest first
func (s *MembershipService) ListByStartup(ctx context.Context, startupID string) ([]models.Membership, error) {
	return s.find(ctx, bson.M{"startupId": startupID})
}

// ListFor returns the membership rows for one user on one startup, oldest
// first. The access gateway reads the first row's role.
func (s *MembershipService) ListFor(ctx context.Context, startupID, userID string) ([]models.Membership, error) {
	return s.find(ctx, bson.M{"startupId": startupID, "userId": userID})
}

// StartupIDsFor returns the distinct startup IDs the user has a membership on
func (s *MembershipService) StartupIDsFor(ctx context.Context, userID string) ([]string, error) {
	raw, err := s.collection.Distinct(ctx, "startupId", bson.M{"userId": userID})
	if err != nil {
		return nil, fmt.Errorf("failed to list memberships: %w", err)
	}

	ids := make([]string, 0, len(raw))
	for _, v := range raw {
		if id, ok := v.(string); ok {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func (s *MembershipService) find(ctx context.Context, filter bson.M) ([]models.Membership, error) {
	opts := options.Find().SetSort(bson.M{"createdAt": 1})

	cursor, err := s.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list memberships: %w", err)
	}
	defer cursor.Close(ctx)

	memberships := []models.Membership{}
	if err := cursor.All(ctx, &memberships); err != nil {
		return nil, fmt.Errorf("failed to decode memberships: %w", err)
	}
	return memberships, nil
}
