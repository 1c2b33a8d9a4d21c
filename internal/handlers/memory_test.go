package handlers

import (
	"context"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"

	"founderflow/internal/authz"
	"founderflow/internal/models"

	"github.com/gofiber/fiber/v2"
)

type fakeMemoryLog struct {
	entries []models.MemoryEntry
}

func (f *fakeMemoryLog) Append(ctx context.Context, startupID, entryType, source, content string) (*models.MemoryEntry, error) {
	entry := models.MemoryEntry{
		ID:        "entry-1",
		StartupID: startupID,
		Type:      entryType,
		Source:    source,
		Content:   content,
	}
	f.entries = append(f.entries, entry)
	return &entry, nil
}

func (f *fakeMemoryLog) ListByStartup(ctx context.Context, startupID string, limit int64) ([]models.MemoryEntry, error) {
	return f.entries, nil
}

func setupMemoryApp(memLog *fakeMemoryLog) *fiber.App {
	store := &stubStore{
		startup: &models.Startup{ID: "s1", OwnerID: "owner-1", Name: "Acme", Stage: models.StageNew},
	}
	verifier := authz.VerifierFunc(func(token string) (string, error) {
		if token == "owner-token" {
			return "owner-1", nil
		}
		return "", errors.New("bad token")
	})

	handler := NewMemoryHandler(authz.NewGateway(verifier, store), memLog)

	app := fiber.New()
	app.Post("/api/startups/:id/memory", handler.Append)
	return app
}

func TestAppendMemory_StampsTypeAndSource(t *testing.T) {
	memLog := &fakeMemoryLog{}
	app := setupMemoryApp(memLog)

	// Type and source in the body are not part of the request contract; the
	// handler records a decision attributed to the authenticated caller.
	body := strings.NewReader(`{"content":"Pivot to B2B","type":"agent_output","source":"somebody-else"}`)
	req := httptest.NewRequest("POST", "/api/startups/s1/memory", body)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer owner-token")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to send request: %v", err)
	}
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("Expected 201, got %d", resp.StatusCode)
	}

	if len(memLog.entries) != 1 {
		t.Fatalf("Expected 1 recorded entry, got %d", len(memLog.entries))
	}
	entry := memLog.entries[0]
	if entry.Type != models.MemoryTypeDecision {
		t.Errorf("Expected decision entry, got %q", entry.Type)
	}
	if entry.Source != "owner-1" {
		t.Errorf("Expected caller as source, got %q", entry.Source)
	}
	if entry.Content != "Pivot to B2B" {
		t.Errorf("Unexpected content: %q", entry.Content)
	}
}

func TestAppendMemory_EmptyContentRejected(t *testing.T) {
	memLog := &fakeMemoryLog{}
	app := setupMemoryApp(memLog)

	body := strings.NewReader(`{"content":"   "}`)
	req := httptest.NewRequest("POST", "/api/startups/s1/memory", body)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer owner-token")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to send request: %v", err)
	}
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Errorf("Expected 400 for blank content, got %d", resp.StatusCode)
	}
	if len(memLog.entries) != 0 {
		t.Errorf("Expected no entry recorded, got %d", len(memLog.entries))
	}
}
