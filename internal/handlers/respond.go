package handlers

import (
	"errors"
	"fmt"

	"founderflow/internal/authz"
	"founderflow/internal/llm"

	"github.com/gofiber/fiber/v2"
)

// Stable machine-readable error codes carried in every error response
const (
	codeUnauthenticated   = "unauthenticated"
	codeForbidden         = "forbidden"
	codeNotFound          = "not_found"
	codeInvalidRequest    = "invalid_request"
	codeConflict          = "conflict"
	codeGenerationFailed  = "generation_failed"
	codeMalformedResponse = "malformed_response"
	codeRateLimited       = "rate_limited"
	codeInternal          = "internal_error"
)

// writeError emits the error envelope every endpoint shares:
// {"error": {"message": ..., "code": ...}}
func writeError(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error": fiber.Map{
			"message": message,
			"code":    code,
		},
	})
}

// writeAuthzError maps gateway outcomes onto the error envelope
func writeAuthzError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, authz.ErrUnauthenticated):
		return writeError(c, fiber.StatusUnauthorized, codeUnauthenticated, "Authentication required")
	case errors.Is(err, authz.ErrForbidden):
		return writeError(c, fiber.StatusForbidden, codeForbidden, "You do not have access to this startup")
	case errors.Is(err, authz.ErrStartupNotFound):
		return writeError(c, fiber.StatusNotFound, codeNotFound, "Startup not found")
	}
	return writeError(c, fiber.StatusInternalServerError, codeInternal, "Internal server error")
}

// writeGenerationError maps generation client failures onto the error envelope
func writeGenerationError(c *fiber.Ctx, err error) error {
	if errors.Is(err, llm.ErrMalformedResponse) {
		return writeError(c, fiber.StatusInternalServerError, codeMalformedResponse,
			"The model returned output that could not be parsed")
	}

	var genErr *llm.GenerationError
	if errors.As(err, &genErr) {
		// The last underlying provider error is the only diagnostic the
		// caller gets; don't swallow it.
		msg := "Generation failed after trying all configured models"
		if genErr.LastErr != nil {
			msg = fmt.Sprintf("%s: %v", msg, genErr.LastErr)
		}
		return writeError(c, fiber.StatusInternalServerError, codeGenerationFailed, msg)
	}

	return writeError(c, fiber.StatusInternalServerError, codeInternal, "Internal server error")
}
