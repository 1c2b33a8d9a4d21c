package llm

import (
	"context"
	"errors"
	"log/slog"
	"math/rand"
	"sync"
	"time"
)

// Backoff between retries of the same model: base * 2^attempt + jitter,
// jitter in [0, maxJitter).
const (
	backoffBase = 1 * time.Second
	maxJitter   = 1 * time.Second
)

var errAllModelsCoolingDown = errors.New("all candidate models are cooling down")

// Provider is the text-generation collaborator. Failures carry status and
// message as a *ProviderError where the endpoint returned an HTTP error.
type Provider interface {
	Generate(ctx context.Context, modelID, prompt string) (string, error)
}

// Result is a successful generation outcome
type Result struct {
	Text  string // raw model output
	Data  any    // parsed JSON payload, set only when parsing was requested
	Model string // model that produced the output
}

// Client sends prompts to the generation provider, walking an ordered model
// priority list with per-model retries and immediate fallback on quota or
// missing-model failures. It holds no mutable cross-call state beyond the
// model list (hot-reloadable) and the cooldown registry.
type Client struct {
	provider  Provider
	cooldowns *ModelCooldowns

	mu     sync.RWMutex
	models []string

	base  time.Duration
	sleep func(ctx context.Context, d time.Duration) error
}

// NewClient creates a generation client over the given provider and model
// priority list (most capable / cheapest first).
func NewClient(provider Provider, models []string) *Client {
	return &Client{
		provider:  provider,
		cooldowns: NewModelCooldowns(),
		models:    append([]string(nil), models...),
		base:      backoffBase,
		sleep:     sleepCtx,
	}
}

// SetModels swaps the model priority list (models.yaml hot reload)
func (c *Client) SetModels(models []string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.models = append([]string(nil), models...)
}

// Models returns a copy of the current model priority list
func (c *Client) Models() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]string(nil), c.models...)
}

// Generate sends the prompt to the first model that answers. Each model gets
// up to maxRetriesPerModel attempts with exponential backoff; rate-limited or
// missing models are abandoned immediately in favor of the next one. The
// prompt is passed through unmodified - validation is the caller's job.
//
// With parseJSON set, the first embedded {...} or [...] payload in the output
// is parsed and returned in Result.Data; unparsable output fails with
// ErrMalformedResponse. Only after every model is exhausted does the call
// fail, with the most recent error wrapped in *GenerationError.
func (c *Client) Generate(ctx context.Context, prompt string, parseJSON bool, maxRetriesPerModel int) (*Result, error) {
	if maxRetriesPerModel < 1 {
		maxRetriesPerModel = 1
	}

	models := c.Models()
	if len(models) == 0 {
		return nil, errors.New("no models configured")
	}

	var lastErr error
	skipped := 0

	for _, model := range models {
		if c.cooldowns.OnCooldown(model) {
			slog.Debug("skipping model on cooldown", "model", model)
			skipped++
			continue
		}

		result, err := c.tryModel(ctx, model, prompt, parseJSON, maxRetriesPerModel)
		if err == nil {
			return result, nil
		}
		if errors.Is(err, ErrMalformedResponse) {
			generationFailures.Inc()
			return nil, err
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		lastErr = err
	}

	if lastErr == nil && skipped == len(models) {
		lastErr = errAllModelsCoolingDown
	}

	generationFailures.Inc()
	return nil, &GenerationError{LastErr: lastErr}
}

// tryModel runs the retry loop for a single model. Returns the last attempt
// error once the model is given up on.
func (c *Client) tryModel(ctx context.Context, model, prompt string, parseJSON bool, maxRetries int) (*Result, error) {
	var lastErr error

	for attempt := 0; attempt < maxRetries; attempt++ {
		generationAttempts.WithLabelValues(model).Inc()

		text, err := c.provider.Generate(ctx, model, prompt)
		if err == nil {
			if !parseJSON {
				return &Result{Text: text, Model: model}, nil
			}
			data, perr := ExtractJSON(text)
			if perr != nil {
				return nil, perr
			}
			return &Result{Text: text, Data: data, Model: model}, nil
		}

		lastErr = err

		if classify(err) == nextModel {
			if isQuota(err) {
				c.cooldowns.Set(model, DefaultCooldown)
			}
			generationFallbacks.WithLabelValues(model).Inc()
			slog.Warn("abandoning model", "model", model, "attempt", attempt+1, "error", err)
			break
		}

		if attempt < maxRetries-1 {
			delay := c.base*(1<<attempt) + time.Duration(rand.Int63n(int64(maxJitter)))
			slog.Debug("retrying model after backoff", "model", model, "attempt", attempt+1, "delay", delay)
			if err := c.sleep(ctx, delay); err != nil {
				return nil, err
			}
		}
	}

	return nil, lastErr
}

// sleepCtx waits for d or until the context is done
func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
