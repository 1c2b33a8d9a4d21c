package llm

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrMalformedResponse means the model output could not be parsed as JSON
// when structured output was requested. Never retried: the call already
// succeeded at the transport level.
var ErrMalformedResponse = errors.New("malformed generation response")

// ProviderError carries the HTTP status and message returned by the
// text-generation endpoint.
type ProviderError struct {
	StatusCode int
	Message    string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider error [%d]: %s", e.StatusCode, e.Message)
}

// GenerationError is returned only after every candidate model has been
// exhausted. It wraps the most recent error encountered across all attempts.
type GenerationError struct {
	LastErr error
}

func (e *GenerationError) Error() string {
	if e.LastErr == nil {
		return "generation failed: all models exhausted"
	}
	return fmt.Sprintf("generation failed after exhausting all models: %v", e.LastErr)
}

func (e *GenerationError) Unwrap() error {
	return e.LastErr
}

// decision is the outcome of classifying a provider failure
type decision int

const (
	// retrySameModel - transient failure, back off and retry this model
	retrySameModel decision = iota
	// nextModel - this model is rate-limited or missing, move on immediately
	nextModel
)

// classify maps a provider failure to a retry decision. Rate limiting and
// model-not-found abandon the remaining retries for the model; everything
// else (5xx, timeouts, network errors) retries the same model with backoff.
func classify(err error) decision {
	var pe *ProviderError
	if !errors.As(err, &pe) {
		return retrySameModel
	}

	switch pe.StatusCode {
	case http.StatusTooManyRequests, http.StatusNotFound:
		return nextModel
	}

	if isQuotaMessage(pe.Message) || isModelNotFoundMessage(pe.Message) {
		return nextModel
	}

	return retrySameModel
}

// isQuota reports whether a failure indicates quota exhaustion or rate
// limiting; such models go on cooldown for subsequent requests.
func isQuota(err error) bool {
	var pe *ProviderError
	if !errors.As(err, &pe) {
		return false
	}
	return pe.StatusCode == http.StatusTooManyRequests || isQuotaMessage(pe.Message)
}

func isQuotaMessage(body string) bool {
	lowerBody := strings.ToLower(body)
	quotaPatterns := []string{
		"quota exceeded",
		"rate limit",
		"too many requests",
		"tokens per minute",
		"requests per minute",
		"daily limit",
		"insufficient_quota",
		"rate_limit_exceeded",
		"quota_exceeded",
	}

	for _, pattern := range quotaPatterns {
		if strings.Contains(lowerBody, pattern) {
			return true
		}
	}

	return false
}

func isModelNotFoundMessage(body string) bool {
	lowerBody := strings.ToLower(body)
	notFoundPatterns := []string{
		"model not found",
		"model_not_found",
		"does not exist",
		"no such model",
		"unknown model",
	}

	for _, pattern := range notFoundPatterns {
		if strings.Contains(lowerBody, pattern) {
			return true
		}
	}

	return false
}
