package llm

import (
	"time"

	cache "github.com/patrickmn/go-cache"
)

// DefaultCooldown is how long a quota-limited model is skipped before it is
// tried again. Matches the typical per-minute rate limit window with margin.
const DefaultCooldown = 5 * time.Minute

// ModelCooldowns tracks models that recently hit quota limits so later
// requests skip them instead of burning an attempt. Cooldowns only affect
// requests that start after the cooldown was set; an in-flight request that
// hits a limit still walks to the next model on its own.
type ModelCooldowns struct {
	entries *cache.Cache
}

// NewModelCooldowns creates an empty cooldown registry
func NewModelCooldowns() *ModelCooldowns {
	return &ModelCooldowns{
		entries: cache.New(DefaultCooldown, 10*time.Minute),
	}
}

// Set puts a model on cooldown for the given duration
func (m *ModelCooldowns) Set(modelID string, d time.Duration) {
	m.entries.Set(modelID, time.Now().Add(d), d)
}

// OnCooldown reports whether a model is currently cooling down
func (m *ModelCooldowns) OnCooldown(modelID string) bool {
	_, found := m.entries.Get(modelID)
	return found
}
