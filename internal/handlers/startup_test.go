package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"founderflow/internal/authz"
	"founderflow/internal/models"

	"github.com/gofiber/fiber/v2"
)

type stubStore struct {
	startup     *models.Startup
	memberships []models.Membership
}

func (s *stubStore) GetStartup(ctx context.Context, startupID string) (*models.Startup, error) {
	if s.startup != nil && s.startup.ID == startupID {
		return s.startup, nil
	}
	return nil, nil
}

func (s *stubStore) ListMemberships(ctx context.Context, startupID, userID string) ([]models.Membership, error) {
	var rows []models.Membership
	for _, m := range s.memberships {
		if m.StartupID == startupID && m.UserID == userID {
			rows = append(rows, m)
		}
	}
	return rows, nil
}

func setupStartupApp() *fiber.App {
	store := &stubStore{
		startup: &models.Startup{ID: "s1", OwnerID: "owner-1", Name: "Acme", Stage: models.StageNew},
		memberships: []models.Membership{
			{StartupID: "s1", UserID: "member-1", Role: models.RoleTeam},
		},
	}
	verifier := authz.VerifierFunc(func(token string) (string, error) {
		switch token {
		case "owner-token":
			return "owner-1", nil
		case "member-token":
			return "member-1", nil
		case "stranger-token":
			return "stranger-1", nil
		}
		return "", errors.New("bad token")
	})

	gateway := authz.NewGateway(verifier, store)
	handler := NewStartupHandler(gateway, nil, nil)

	app := fiber.New()
	app.Get("/api/startups/:id", handler.Get)
	return app
}

func getStartup(t *testing.T, app *fiber.App, id, token string) (int, string) {
	req := httptest.NewRequest("GET", "/api/startups/"+id, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to send request: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)

	var envelope struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	json.Unmarshal(body, &envelope)
	return resp.StatusCode, envelope.Error.Code
}

func TestGetStartup_OwnerAllowed(t *testing.T) {
	app := setupStartupApp()

	status, _ := getStartup(t, app, "s1", "owner-token")
	if status != fiber.StatusOK {
		t.Errorf("Expected 200 for owner, got %d", status)
	}
}

func TestGetStartup_MemberAllowed(t *testing.T) {
	app := setupStartupApp()

	status, _ := getStartup(t, app, "s1", "member-token")
	if status != fiber.StatusOK {
		t.Errorf("Expected 200 for member, got %d", status)
	}
}

func TestGetStartup_StrangerForbidden(t *testing.T) {
	app := setupStartupApp()

	status, code := getStartup(t, app, "s1", "stranger-token")
	if status != fiber.StatusForbidden {
		t.Errorf("Expected 403 for stranger, got %d", status)
	}
	if code != "forbidden" {
		t.Errorf("Expected forbidden code, got %q", code)
	}
}

func TestGetStartup_MissingToken(t *testing.T) {
	app := setupStartupApp()

	status, code := getStartup(t, app, "s1", "")
	if status != fiber.StatusUnauthorized {
		t.Errorf("Expected 401 without token, got %d", status)
	}
	if code != "unauthenticated" {
		t.Errorf("Expected unauthenticated code, got %q", code)
	}
}

func TestGetStartup_UnknownStartup(t *testing.T) {
	app := setupStartupApp()

	status, code := getStartup(t, app, "no-such-id", "owner-token")
	if status != fiber.StatusNotFound {
		t.Errorf("Expected 404 for unknown startup, got %d", status)
	}
	if code != "not_found" {
		t.Errorf("Expected not_found code, got %q", code)
	}
}
