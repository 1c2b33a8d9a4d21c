package services

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"founderflow/internal/database"
	"founderflow/internal/llm"
	"founderflow/internal/logging"
	"founderflow/internal/models"

	"github.com/google/uuid"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GenerationService runs the agent operations: it prompts the model through
// the fallback client, persists the artifact, appends the outcome to the
// startup's memory log and advances the workflow stage.
type GenerationService struct {
	db         *database.MongoDB
	collection *mongo.Collection
	client     *llm.Client
	startups   *StartupService
	memory     *MemoryService
	markdown   goldmark.Markdown

	maxRetriesPerModel int
}

// NewGenerationService creates a new generation service
func NewGenerationService(db *database.MongoDB, client *llm.Client, startups *StartupService, memory *MemoryService, maxRetriesPerModel int) *GenerationService {
	return &GenerationService{
		db:         db,
		collection: db.Collection(database.CollectionGenerations),
		client:     client,
		startups:   startups,
		memory:     memory,
		markdown: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
		),
		maxRetriesPerModel: maxRetriesPerModel,
	}
}

// stageAfter maps a completed generation kind to the workflow stage it
// unlocks. Pitch decks do not move the workflow.
func stageAfter(kind string) string {
	switch kind {
	case models.GenerationKindMarketReport:
		return models.StageIdeaValidated
	case models.GenerationKindRoadmap:
		return models.StageRoadmapCreated
	case models.GenerationKindTasks:
		return models.StageExecutionActive
	}
	return ""
}

// structuredOutput reports whether the kind's artifact is JSON. Pitch decks
// are markdown and pass through unparsed.
func structuredOutput(kind string) bool {
	return kind != models.GenerationKindPitchDeck
}

// Run executes one agent operation against the startup and returns the
// persisted artifact.
func (s *GenerationService) Run(ctx context.Context, startup *models.Startup, kind, userID string) (*models.GenerationRecord, error) {
	if !models.KnownGenerationKind(kind) {
		return nil, fmt.Errorf("unknown generation kind: %s", kind)
	}

	log := logging.WithGeneration(startup.ID, kind, userID)
	log.Info("starting generation")
	started := time.Now()

	prompt := buildPrompt(startup, kind)

	result, err := s.client.Generate(ctx, prompt, structuredOutput(kind), s.maxRetriesPerModel)
	if err != nil {
		log.Error("generation failed", "error", err)
		return nil, err
	}

	record := &models.GenerationRecord{
		ID:        uuid.New().String(),
		StartupID: startup.ID,
		Kind:      kind,
		Model:     result.Model,
		Content:   result.Text,
		CreatedAt: time.Now(),
	}
	if _, err := s.collection.InsertOne(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to persist generation: %w", err)
	}

	// The memory append and stage advance are best-effort bookkeeping; the
	// artifact is already durable.
	if _, err := s.memory.Append(ctx, startup.ID, models.MemoryTypeAgentOutput, kind,
		fmt.Sprintf("Generated %s using %s", kind, result.Model)); err != nil {
		log.Warn("failed to append memory entry", "error", err)
	}

	if next := stageAfter(kind); next != "" {
		if err := s.startups.AdvanceStage(ctx, startup.ID, next); err != nil {
			log.Warn("failed to advance stage", "error", err)
		}
	}

	generationsCompleted.WithLabelValues(kind).Inc()
	generationLatency.Observe(time.Since(started).Seconds())
	log.Info("generation complete", "model", result.Model, "duration", time.Since(started))

	return record, nil
}

// ListByStartup returns a startup's artifacts of one kind, newest first.
// An empty kind returns all kinds.
func (s *GenerationService) ListByStartup(ctx context.Context, startupID, kind string, limit int64) ([]models.GenerationRecord, error) {
	filter := bson.M{"startupId": startupID}
	if kind != "" {
		filter["kind"] = kind
	}

	opts := options.Find().SetSort(bson.M{"createdAt": -1})
	if limit > 0 {
		opts.SetLimit(limit)
	}

	cursor, err := s.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list generations: %w", err)
	}
	defer cursor.Close(ctx)

	records := []models.GenerationRecord{}
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("failed to decode generations: %w", err)
	}
	return records, nil
}

// Latest returns the newest artifact of a kind, or (nil, nil) when the
// startup has none.
func (s *GenerationService) Latest(ctx context.Context, startupID, kind string) (*models.GenerationRecord, error) {
	opts := options.FindOne().SetSort(bson.M{"createdAt": -1})

	var record models.GenerationRecord
	err := s.collection.FindOne(ctx, bson.M{"startupId": startupID, "kind": kind}, opts).Decode(&record)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get latest generation: %w", err)
	}
	return &record, nil
}

// RenderPitchDeckHTML renders the newest pitch deck's markdown to HTML.
// Returns ("", nil) when no pitch deck has been generated yet.
func (s *GenerationService) RenderPitchDeckHTML(ctx context.Context, startupID string) (string, error) {
	record, err := s.Latest(ctx, startupID, models.GenerationKindPitchDeck)
	if err != nil {
		return "", err
	}
	if record == nil {
		return "", nil
	}

	var buf bytes.Buffer
	if err := s.markdown.Convert([]byte(record.Content), &buf); err != nil {
		return "", fmt.Errorf("failed to render pitch deck: %w", err)
	}
	return buf.String(), nil
}

// DeleteOlderThan prunes artifacts created before the cutoff (retention job)
func (s *GenerationService) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := s.collection.DeleteMany(ctx, bson.M{"createdAt": bson.M{"$lt": cutoff}})
	if err != nil {
		return 0, fmt.Errorf("failed to prune generations: %w", err)
	}
	return result.DeletedCount, nil
}

// Count returns the total number of stored artifacts (for admin analytics)
func (s *GenerationService) Count(ctx context.Context) (int64, error) {
	count, err := s.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count generations: %w", err)
	}
	return count, nil
}
