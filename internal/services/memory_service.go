package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"founderflow/internal/database"
	"founderflow/internal/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MemoryService handles the append-only memory log attached to each startup
type MemoryService struct {
	db         *database.MongoDB
	collection *mongo.Collection
}

// NewMemoryService creates a new memory service
func NewMemoryService(db *database.MongoDB) *MemoryService {
	return &MemoryService{
		db:         db,
		collection: db.Collection(database.CollectionMemoryEntries),
	}
}

// Append records a memory entry. Entries are never updated after insert.
func (s *MemoryService) Append(ctx context.Context, startupID, entryType, source, content string) (*models.MemoryEntry, error) {
	entry := &models.MemoryEntry{
		ID:        uuid.New().String(),
		StartupID: startupID,
		Type:      entryType,
		Source:    source,
		Content:   content,
		Timestamp: time.Now(),
	}

	if _, err := s.collection.InsertOne(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to append memory entry: %w", err)
	}

	memoryEntriesAppended.WithLabelValues(entryType).Inc()
	return entry, nil
}

// ListByStartup returns the memory log for a startup, newest first
func (s *MemoryService) ListByStartup(ctx context.Context, startupID string, limit int64) ([]models.MemoryEntry, error) {
	opts := options.Find().SetSort(bson.M{"timestamp": -1})
	if limit > 0 {
		opts.SetLimit(limit)
	}

	cursor, err := s.collection.Find(ctx, bson.M{"startupId": startupID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list memory entries: %w", err)
	}
	defer cursor.Close(ctx)

	entries := []models.MemoryEntry{}
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode memory entries: %w", err)
	}
	return entries, nil
}

// DeleteAllForStartup wipes the memory log of a startup. Admin-only; normal
// API surface never deletes memory.
func (s *MemoryService) DeleteAllForStartup(ctx context.Context, startupID string) (int64, error) {
	result, err := s.collection.DeleteMany(ctx, bson.M{"startupId": startupID})
	if err != nil {
		return 0, fmt.Errorf("failed to delete memory entries: %w", err)
	}

	log.Printf("🗑️ Deleted %d memory entries for startup %s", result.DeletedCount, startupID)
	return result.DeletedCount, nil
}
