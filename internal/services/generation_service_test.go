package services

import (
	"strings"
	"testing"

	"founderflow/internal/models"
)

func TestStageAfter(t *testing.T) {
	cases := map[string]string{
		models.GenerationKindMarketReport: models.StageIdeaValidated,
		models.GenerationKindRoadmap:      models.StageRoadmapCreated,
		models.GenerationKindTasks:        models.StageExecutionActive,
		models.GenerationKindPitchDeck:    "",
	}

	for kind, want := range cases {
		if got := stageAfter(kind); got != want {
			t.Errorf("stageAfter(%s) = %q, want %q", kind, got, want)
		}
	}
}

func TestStructuredOutput(t *testing.T) {
	// Pitch decks are markdown; everything else must parse as JSON
	if structuredOutput(models.GenerationKindPitchDeck) {
		t.Error("Expected pitch deck output to be unstructured")
	}
	for _, kind := range []string{
		models.GenerationKindMarketReport,
		models.GenerationKindRoadmap,
		models.GenerationKindTasks,
	} {
		if !structuredOutput(kind) {
			t.Errorf("Expected %s output to be structured", kind)
		}
	}
}

func TestBuildPrompt_IncludesStartupProfile(t *testing.T) {
	startup := &models.Startup{
		Name:     "Acme Robotics",
		OneLiner: "robots that fold laundry",
		Industry: "consumer hardware",
	}

	for _, kind := range []string{
		models.GenerationKindMarketReport,
		models.GenerationKindRoadmap,
		models.GenerationKindTasks,
		models.GenerationKindPitchDeck,
	} {
		prompt := buildPrompt(startup, kind)
		if !strings.Contains(prompt, "Acme Robotics") {
			t.Errorf("%s prompt missing startup name", kind)
		}
		if !strings.Contains(prompt, "robots that fold laundry") {
			t.Errorf("%s prompt missing one-liner", kind)
		}
	}
}

func TestBuildPrompt_StructuredKindsAskForJSON(t *testing.T) {
	startup := &models.Startup{Name: "Acme"}

	for _, kind := range []string{
		models.GenerationKindMarketReport,
		models.GenerationKindRoadmap,
		models.GenerationKindTasks,
	} {
		if !strings.Contains(buildPrompt(startup, kind), "JSON") {
			t.Errorf("%s prompt does not request JSON", kind)
		}
	}

	if strings.Contains(buildPrompt(startup, models.GenerationKindPitchDeck), "JSON") {
		t.Error("pitch deck prompt must request markdown, not JSON")
	}
}

func TestBuildPrompt_OmitsEmptyProfileFields(t *testing.T) {
	startup := &models.Startup{Name: "Bare"}

	prompt := buildPrompt(startup, models.GenerationKindRoadmap)
	if strings.Contains(prompt, "industry:") {
		t.Error("prompt mentions industry for a startup without one")
	}
	if strings.Contains(prompt, "described as:") {
		t.Error("prompt mentions description for a startup without one")
	}
}
