package models

import "time"

// Startup workflow stages. These are labels, not a strict progression:
// stage updates always set a named value and no transition ordering is
// enforced, so idempotent re-runs of an agent operation are safe.
const (
	StageNew             = "new"
	StageIdeaValidated   = "idea_validated"
	StageRoadmapCreated  = "roadmap_created"
	StageExecutionActive = "execution_active"
)

// Startup is the tenant-owned record that workflow state, generated
// artifacts and the memory log attach to. OwnerID is set at creation and
// never reassigned.
type Startup struct {
	ID        string    `bson:"_id" json:"id"`
	OwnerID   string    `bson:"ownerId" json:"owner_id"`
	Name      string    `bson:"name" json:"name"`
	OneLiner  string    `bson:"oneLiner,omitempty" json:"one_liner,omitempty"`
	Industry  string    `bson:"industry,omitempty" json:"industry,omitempty"`
	Stage     string    `bson:"stage" json:"stage"`
	CreatedAt time.Time `bson:"createdAt" json:"created_at"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updated_at"`
}

// CreateStartupRequest is the request body for creating a startup
type CreateStartupRequest struct {
	Name     string `json:"name"`
	OneLiner string `json:"one_liner"`
	Industry string `json:"industry"`
}

// UpdateStageRequest is the request body for advancing the workflow stage
type UpdateStageRequest struct {
	Stage string `json:"stage"`
}

// KnownStage reports whether s is one of the named workflow labels
func KnownStage(s string) bool {
	switch s {
	case StageNew, StageIdeaValidated, StageRoadmapCreated, StageExecutionActive:
		return true
	}
	return false
}

// StageRank orders the workflow labels so generation-driven transitions can
// avoid demoting a startup. Unknown labels rank lowest.
func StageRank(s string) int {
	switch s {
	case StageNew:
		return 1
	case StageIdeaValidated:
		return 2
	case StageRoadmapCreated:
		return 3
	case StageExecutionActive:
		return 4
	}
	return 0
}
