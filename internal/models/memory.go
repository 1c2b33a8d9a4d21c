package models

import "time"

// Memory entry types written by the application
const (
	MemoryTypeAgentOutput = "agent_output"
	MemoryTypeDecision    = "decision"
)

// MemoryEntry is an append-only log item attached to a startup. Entries are
// never mutated; the only deletion path is the admin bulk delete.
type MemoryEntry struct {
	ID        string    `bson:"_id" json:"id"`
	StartupID string    `bson:"startupId" json:"startup_id"`
	Type      string    `bson:"type" json:"type"`
	Source    string    `bson:"source" json:"source"`
	Content   string    `bson:"content" json:"content"`
	Timestamp time.Time `bson:"timestamp" json:"timestamp"`
}

// AppendMemoryRequest is the request body for appending a log entry. The
// entry type and source are stamped server-side, never taken from the caller.
type AppendMemoryRequest struct {
	Content string `json:"content"`
}
