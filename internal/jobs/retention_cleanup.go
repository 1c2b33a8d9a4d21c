package jobs

import (
	"context"
	"log"
	"time"

	"founderflow/internal/services"
)

// RetentionCleanup prunes generation artifacts past the retention window.
// Memory entries are exempt: the memory log is append-only and only the
// admin purge removes it.
type RetentionCleanup struct {
	generations   *services.GenerationService
	retentionDays int
}

// NewRetentionCleanup creates the cleanup job
func NewRetentionCleanup(generations *services.GenerationService, retentionDays int) *RetentionCleanup {
	return &RetentionCleanup{
		generations:   generations,
		retentionDays: retentionDays,
	}
}

// Run deletes artifacts older than the retention window
func (j *RetentionCleanup) Run() {
	if j.retentionDays <= 0 {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	cutoff := time.Now().AddDate(0, 0, -j.retentionDays)
	deleted, err := j.generations.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		log.Printf("❌ [RETENTION] Cleanup failed: %v", err)
		return
	}

	if deleted > 0 {
		log.Printf("🗑️ [RETENTION] Pruned %d generation artifacts older than %d days", deleted, j.retentionDays)
	}
}
