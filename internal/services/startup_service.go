package services

import (
	"context"
	"fmt"
	"time"

	"founderflow/internal/database"
	"founderflow/internal/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// StartupService handles startup CRUD with MongoDB
type StartupService struct {
	db          *database.MongoDB
	collection  *mongo.Collection
	memberships *MembershipService
}

// NewStartupService creates a new startup service
func NewStartupService(db *database.MongoDB, memberships *MembershipService) *StartupService {
	return &StartupService{
		db:          db,
		collection:  db.Collection(database.CollectionStartups),
		memberships: memberships,
	}
}

// Create persists a new startup owned by ownerID, starting at the new stage
func (s *StartupService) Create(ctx context.Context, ownerID string, req *models.CreateStartupRequest) (*models.Startup, error) {
	now := time.Now()
	startup := &models.Startup{
		ID:        uuid.New().String(),
		OwnerID:   ownerID,
		Name:      req.Name,
		OneLiner:  req.OneLiner,
		Industry:  req.Industry,
		Stage:     models.StageNew,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := s.collection.InsertOne(ctx, startup); err != nil {
		return nil, fmt.Errorf("failed to create startup: %w", err)
	}

	startupsCreated.Inc()
	return startup, nil
}

// GetByID returns the startup, or (nil, nil) when it does not exist
func (s *StartupService) GetByID(ctx context.Context, startupID string) (*models.Startup, error) {
	var startup models.Startup
	err := s.collection.FindOne(ctx, bson.M{"_id": startupID}).Decode(&startup)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get startup: %w", err)
	}
	return &startup, nil
}

// ListByUser returns every startup the user owns or is a member of, most
// recently updated first.
func (s *StartupService) ListByUser(ctx context.Context, userID string) ([]*models.Startup, error) {
	memberOf, err := s.memberships.StartupIDsFor(ctx, userID)
	if err != nil {
		return nil, err
	}

	filter := bson.M{
		"$or": []bson.M{
			{"ownerId": userID},
			{"_id": bson.M{"$in": memberOf}},
		},
	}
	opts := options.Find().SetSort(bson.M{"updatedAt": -1})

	cursor, err := s.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list startups: %w", err)
	}
	defer cursor.Close(ctx)

	startups := []*models.Startup{}
	if err := cursor.All(ctx, &startups); err != nil {
		return nil, fmt.Errorf("failed to decode startups: %w", err)
	}
	return startups, nil
}

// UpdateStage moves the startup to the given lifecycle stage. Any known
// stage is accepted; stages do not have to advance in order.
func (s *StartupService) UpdateStage(ctx context.Context, startupID, stage string) (*models.Startup, error) {
	if !models.KnownStage(stage) {
		return nil, fmt.Errorf("unknown stage: %s", stage)
	}
	return s.setStage(ctx, startupID, stage)
}

// AdvanceStage is the generation-side stage transition: it only records
// forward progress and never demotes a startup that is already further along.
func (s *StartupService) AdvanceStage(ctx context.Context, startupID, stage string) error {
	startup, err := s.GetByID(ctx, startupID)
	if err != nil {
		return err
	}
	if startup == nil {
		return fmt.Errorf("startup not found")
	}
	if models.StageRank(startup.Stage) >= models.StageRank(stage) {
		return nil
	}
	_, err = s.setStage(ctx, startupID, stage)
	return err
}

func (s *StartupService) setStage(ctx context.Context, startupID, stage string) (*models.Startup, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var startup models.Startup
	err := s.collection.FindOneAndUpdate(ctx,
		bson.M{"_id": startupID},
		bson.M{"$set": bson.M{"stage": stage, "updatedAt": time.Now()}},
		opts,
	).Decode(&startup)
	if err == mongo.ErrNoDocuments {
		return nil, fmt.Errorf("startup not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update stage: %w", err)
	}
	return &startup, nil
}

// Touch bumps updatedAt without changing anything else
func (s *StartupService) Touch(ctx context.Context, startupID string) error {
	_, err := s.collection.UpdateOne(ctx,
		bson.M{"_id": startupID},
		bson.M{"$set": bson.M{"updatedAt": time.Now()}},
	)
	if err != nil {
		return fmt.Errorf("failed to touch startup: %w", err)
	}
	return nil
}

// Count returns the total number of startups (for admin analytics)
func (s *StartupService) Count(ctx context.Context) (int64, error) {
	count, err := s.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count startups: %w", err)
	}
	return count, nil
}
