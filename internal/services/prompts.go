package services

import (
	"fmt"
	"strings"

	"founderflow/internal/models"
)

// buildPrompt assembles the instruction for one agent operation from the
// startup's profile. Prompts ask for JSON explicitly; the client still
// tolerates prose around the payload.
func buildPrompt(startup *models.Startup, kind string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "You are a startup advisor working with %q", startup.Name)
	if startup.OneLiner != "" {
		fmt.Fprintf(&b, ", described as: %s", startup.OneLiner)
	}
	if startup.Industry != "" {
		fmt.Fprintf(&b, " (industry: %s)", startup.Industry)
	}
	b.WriteString(".\n\n")

	switch kind {
	case models.GenerationKindMarketReport:
		b.WriteString(`Produce a market validation report for this startup.
Respond with a single JSON object with these keys:
  "scoring": integer 0-100, how viable the idea is
  "summary": one-paragraph verdict
  "market_size": estimated market description
  "competitors": array of {"name", "strength"} objects
  "risks": array of strings
Respond with JSON only.`)

	case models.GenerationKindRoadmap:
		b.WriteString(`Produce a 12-month product roadmap for this startup.
Respond with a single JSON object with these keys:
  "milestones": array of {"title", "description", "quarter"} objects, in order
  "north_star": the single metric the roadmap optimizes for
Respond with JSON only.`)

	case models.GenerationKindTasks:
		b.WriteString(`Break the next milestone of this startup into actionable tasks.
Respond with a single JSON object with these keys:
  "tasks": array of {"title", "description", "priority"} objects,
           priority one of "high", "medium", "low"
Respond with JSON only.`)

	case models.GenerationKindPitchDeck:
		b.WriteString(`Write an investor pitch deck for this startup as markdown.
Use a level-2 heading per slide, in this order: Problem, Solution, Market,
Product, Business Model, Competition, Team, Ask. Keep each slide under 80
words. Respond with markdown only.`)
	}

	return b.String()
}
