// Package critic is the external analysis adapter. It builds a mode-aware
// prompt, invokes the text-generation collaborator, and validates untrusted
// model output into the same observation schema the heuristics produce.
package critic

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/magnusgp/fermatter/common/llm"
	"github.com/magnusgp/fermatter/common/logger"
	"github.com/magnusgp/fermatter/internal/model"
)

const (
	maxAttempts  = 2
	retryBackoff = 300 * time.Millisecond
)

// Critic reviews text through the external model. The client is injected at
// construction; a nil client means no credential is configured and Review
// fails fast without any network call.
type Critic struct {
	client      llm.Client
	temperature float64
}

func New(client llm.Client, temperature float64) *Critic {
	return &Critic{client: client, temperature: temperature}
}

// Configured reports whether an external client is available.
func (c *Critic) Configured() bool {
	return c != nil && c.client != nil
}

// Review performs one external structured-analysis attempt with a bounded
// retry budget. Transport errors and empty bodies retry within the budget;
// a malformed body retries once with a corrective instruction appended.
// Any exhausted budget surfaces as an error for the orchestrator to degrade.
func (c *Critic) Review(ctx context.Context, req ReviewRequest) ([]model.Observation, error) {
	if !c.Configured() {
		return nil, fmt.Errorf("llm client not configured")
	}

	sc := logger.StartSpan(ctx, "critic.review")
	defer sc.End()
	ctx = logger.WithLogFields(sc.Context(), logger.LogFields{
		Component: "fermatter.critic",
	})

	messages := buildMessages(req)

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if attempt > 0 {
			// Bounded pause between attempts; the budget stays capped.
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(retryBackoff):
			}
		}

		resp, err := c.client.Chat(ctx, llm.Request{
			Messages:    messages,
			Temperature: llm.Temp(c.temperature),
		})
		if err != nil {
			lastErr = err
			if attempt < maxAttempts-1 && llm.IsRetryable(ctx, err) {
				continue
			}
			sc.RecordError(err)
			return nil, fmt.Errorf("llm call failed: %w", err)
		}

		if resp.Content == "" {
			slog.WarnContext(ctx, "empty response from llm", "attempt", attempt)
			lastErr = fmt.Errorf("empty response from llm")
			continue
		}

		raw, ok := parseResponse(resp.Content)
		if !ok {
			slog.WarnContext(ctx, "llm response is not valid json",
				"attempt", attempt,
				"content", logger.Truncate(resp.Content, 200))
			lastErr = fmt.Errorf("invalid response format")
			if attempt < maxAttempts-1 {
				messages = append(messages, llm.Message{
					Role:    llm.RoleUser,
					Content: "Please return ONLY valid JSON, no other text.",
				})
				continue
			}
			return nil, lastErr
		}

		observations := sanitizeObservations(ctx, raw, len(req.Paragraphs))
		slog.InfoContext(ctx, "llm review completed",
			"observations", len(observations),
			"model", c.client.Model())
		return observations, nil
	}

	sc.RecordError(lastErr)
	return nil, fmt.Errorf("llm analysis failed after %d attempts: %w", maxAttempts, lastErr)
}
