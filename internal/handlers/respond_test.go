package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"founderflow/internal/llm"

	"github.com/gofiber/fiber/v2"
)

func generationErrorResponse(t *testing.T, err error) (int, string, string) {
	app := fiber.New()
	app.Post("/generate", func(c *fiber.Ctx) error {
		return writeGenerationError(c, err)
	})

	resp, reqErr := app.Test(httptest.NewRequest("POST", "/generate", nil))
	if reqErr != nil {
		t.Fatalf("Failed to send request: %v", reqErr)
	}
	body, _ := io.ReadAll(resp.Body)

	var envelope struct {
		Error struct {
			Message string `json:"message"`
			Code    string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		t.Fatalf("Failed to parse error body: %v", err)
	}
	return resp.StatusCode, envelope.Error.Code, envelope.Error.Message
}

func TestGenerationError_SurfacesLastProviderError(t *testing.T) {
	err := &llm.GenerationError{
		LastErr: &llm.ProviderError{StatusCode: 503, Message: "model overloaded"},
	}

	status, code, message := generationErrorResponse(t, err)
	if status != fiber.StatusInternalServerError {
		t.Errorf("Expected 500, got %d", status)
	}
	if code != "generation_failed" {
		t.Errorf("Expected generation_failed code, got %q", code)
	}
	// The last provider error is the caller's only diagnostic
	if !strings.Contains(message, "model overloaded") {
		t.Errorf("Expected provider error text in message, got %q", message)
	}
	if !strings.Contains(message, "503") {
		t.Errorf("Expected provider status in message, got %q", message)
	}
}

func TestGenerationError_SurvivesWrapping(t *testing.T) {
	inner := &llm.GenerationError{
		LastErr: &llm.ProviderError{StatusCode: 429, Message: "quota exhausted"},
	}
	wrapped := fmt.Errorf("generating roadmap: %w", inner)

	status, code, message := generationErrorResponse(t, wrapped)
	if status != fiber.StatusInternalServerError || code != "generation_failed" {
		t.Errorf("Expected 500/generation_failed, got %d/%q", status, code)
	}
	if !strings.Contains(message, "quota exhausted") {
		t.Errorf("Expected provider error text in message, got %q", message)
	}
}

func TestGenerationError_MalformedOutput(t *testing.T) {
	status, code, _ := generationErrorResponse(t, llm.ErrMalformedResponse)
	if status != fiber.StatusInternalServerError {
		t.Errorf("Expected 500, got %d", status)
	}
	if code != "malformed_response" {
		t.Errorf("Expected malformed_response code, got %q", code)
	}
}
