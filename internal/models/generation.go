package models

import "time"

// Generation kinds, one per agent operation
const (
	GenerationKindRoadmap      = "roadmap"
	GenerationKindTasks        = "tasks"
	GenerationKindPitchDeck    = "pitch_deck"
	GenerationKindMarketReport = "market_report"
)

// GenerationRecord stores the output of a successful generation call so the
// UI can re-read results without re-prompting the provider. Old records are
// pruned by the retention job.
type GenerationRecord struct {
	ID        string    `bson:"_id" json:"id"`
	StartupID string    `bson:"startupId" json:"startup_id"`
	Kind      string    `bson:"kind" json:"kind"`
	Model     string    `bson:"model" json:"model"`
	Content   string    `bson:"content" json:"content"`
	CreatedAt time.Time `bson:"createdAt" json:"created_at"`
}

// KnownGenerationKind reports whether k names an agent operation
func KnownGenerationKind(k string) bool {
	switch k {
	case GenerationKindRoadmap, GenerationKindTasks, GenerationKindPitchDeck, GenerationKindMarketReport:
		return true
	}
	return false
}
